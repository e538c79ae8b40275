package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/YangSeungWon/pdf-history/internal/model"
	"github.com/YangSeungWon/pdf-history/internal/service"
)

type MockRevisionService struct {
	mock.Mock
}

func (m *MockRevisionService) Upload(ctx context.Context, r io.Reader, displayName string, memo *string) (*model.Revision, error) {
	args := m.Called(ctx, r, displayName, memo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Revision), args.Error(1)
}

func (m *MockRevisionService) List(ctx context.Context) ([]model.RevisionSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RevisionSummary), args.Error(1)
}

func (m *MockRevisionService) Get(ctx context.Context, id int64) (*model.Revision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Revision), args.Error(1)
}

func (m *MockRevisionService) GetFile(ctx context.Context, id int64) (io.ReadCloser, *model.Revision, error) {
	args := m.Called(ctx, id)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var rev *model.Revision
	if args.Get(1) != nil {
		rev = args.Get(1).(*model.Revision)
	}
	return rc, rev, args.Error(2)
}

func (m *MockRevisionService) UpdateMemo(ctx context.Context, id int64, memo string) error {
	args := m.Called(ctx, id, memo)
	return args.Error(0)
}

func (m *MockRevisionService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRevisionService) Compare(ctx context.Context, oldID, newID int64) (*service.CompareResult, error) {
	args := m.Called(ctx, oldID, newID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompareResult), args.Error(1)
}
