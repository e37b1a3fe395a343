package repositories

import (
	"Staffline/utils"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrVersionMismatch = fmt.Errorf("version mismatch: %w", utils.ErrHttpConflict)

type BaseModel struct {
	id uuid.UUID

	auditCreatedAt time.Time
	auditUpdatedAt time.Time

	version int64

	changes map[string]any
}

func NewBaseModel() BaseModel {
	return BaseModel{
		changes: make(map[string]any),
	}
}

func NewBaseModelFromDB(id uuid.UUID, auditCreatedAt time.Time, auditUpdatedAt time.Time, version int64) BaseModel {
	return BaseModel{
		id:             id,
		auditCreatedAt: auditCreatedAt,
		auditUpdatedAt: auditUpdatedAt,
		version:        version,
		changes:        make(map[string]any),
	}
}

// Changes is an internal function that returns the changes made to the model.
// The map is empty if no changes have been made.
func (m *BaseModel) Changes() map[string]any {
	return m.changes
}

func (m *BaseModel) HasChanges() bool {
	return len(m.changes) > 0
}

// TrackChange is an internal function that needs to be called when a field is changed.
func (m *BaseModel) TrackChange(fieldName string, value any) {
	if m.changes == nil {
		m.changes = make(map[string]any)
	}
	m.changes[fieldName] = value
}

// ClearChanges is an internal function that needs to be called when a model is inserted or updated.
func (m *BaseModel) ClearChanges() {
	m.changes = make(map[string]any)
}

// Inserted is an internal function that stores must call after a successful insert.
func (m *BaseModel) Inserted(id uuid.UUID, now time.Time, version int64) {
	m.id = id
	m.auditCreatedAt = now
	m.auditUpdatedAt = now
	m.version = version
	m.ClearChanges()
}

// Updated is an internal function that stores must call after a successful update.
func (m *BaseModel) Updated(now time.Time, version int64) {
	m.auditUpdatedAt = now
	m.version = version
	m.ClearChanges()
}

func (m *BaseModel) Id() uuid.UUID {
	return m.id
}

func (m *BaseModel) AuditCreatedAt() time.Time {
	return m.auditCreatedAt
}

func (m *BaseModel) AuditUpdatedAt() time.Time {
	return m.auditUpdatedAt
}

func (m *BaseModel) Version() int64 {
	return m.version
}

// Mock is a test helper function that sets the model to a mock state.
func (m *BaseModel) Mock(now time.Time) {
	m.id = uuid.New()
	m.auditCreatedAt = now
	m.auditUpdatedAt = now
	m.version = 1
}
