package deposit

import (
	"context"
	"encoding/json"

	"github.com/openrds/depositsync/internal/domain/research"
	"github.com/openrds/depositsync/internal/domain/user"
)

var MockDomainDeposit = Deposit{
	UserId:        "mock-user",
	ResearchIndex: "mock-index",
	Port:          "1",
	Fields: Fields{
		"title": "mock",
	},
}

var MockDomainSchema = Schema{
	Raw:           json.RawMessage(`{"type":"object"}`),
	KernelVersion: "custom",
}

type MockSyncService struct {
	UpdateCalled        uint
	UpdateOverride      func() error
	FindAllCalled       uint
	FindAllOverride     func() ([]Deposit, error)
	FindOneCalled       uint
	FindOneOverride     func() (*Deposit, error)
	FetchSchemaCalled   uint
	FetchSchemaOverride func() (*Schema, error)
}

func (m *MockSyncService) Update(ctx context.Context, deposit *Deposit) error {
	m.UpdateCalled++
	if m.UpdateOverride != nil {
		return m.UpdateOverride()
	} else {
		return nil
	}
}

func (m *MockSyncService) FindAll(ctx context.Context, userId user.Id, researchIndex research.Index) ([]Deposit, error) {
	m.FindAllCalled++
	if m.FindAllOverride != nil {
		return m.FindAllOverride()
	} else {
		return []Deposit{MockDomainDeposit}, nil
	}
}

func (m *MockSyncService) FindOne(ctx context.Context, userId user.Id, researchIndex research.Index, port Port) (*Deposit, error) {
	m.FindOneCalled++
	if m.FindOneOverride != nil {
		return m.FindOneOverride()
	} else {
		return &MockDomainDeposit, nil
	}
}

func (m *MockSyncService) FetchSchema(ctx context.Context) (*Schema, error) {
	m.FetchSchemaCalled++
	if m.FetchSchemaOverride != nil {
		return m.FetchSchemaOverride()
	} else {
		return &MockDomainSchema, nil
	}
}

type MockSchemaCache struct {
	GetCalled   uint
	GetOverride func() (*Schema, bool, error)
}

func (m *MockSchemaCache) Get(ctx context.Context) (*Schema, bool, error) {
	m.GetCalled++
	if m.GetOverride != nil {
		return m.GetOverride()
	} else {
		return &MockDomainSchema, false, nil
	}
}
