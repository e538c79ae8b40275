package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/YangSeungWon/pdf-history/internal/model"
)

type MockRevisionRepository struct {
	mock.Mock
}

func (m *MockRevisionRepository) Create(ctx context.Context, rev *model.Revision) (*model.Revision, error) {
	args := m.Called(ctx, rev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Revision), args.Error(1)
}

func (m *MockRevisionRepository) FindByID(ctx context.Context, id int64) (*model.Revision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Revision), args.Error(1)
}

func (m *MockRevisionRepository) List(ctx context.Context) ([]model.RevisionSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RevisionSummary), args.Error(1)
}

func (m *MockRevisionRepository) UpdateMemo(ctx context.Context, id int64, memo string) error {
	args := m.Called(ctx, id, memo)
	return args.Error(0)
}

func (m *MockRevisionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
