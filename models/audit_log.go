package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	AuditActionRoleAssigned      AuditAction = "role_assigned"
	AuditActionProfileUpdated    AuditAction = "profile_updated"
	AuditActionSiteCreated       AuditAction = "site_created"
	AuditActionSiteUpdated       AuditAction = "site_updated"
	AuditActionSiteDeleted       AuditAction = "site_deleted"
	AuditActionWasteDataCreated  AuditAction = "waste_data_created"
	AuditActionWasteDataUpdated  AuditAction = "waste_data_updated"
	AuditActionWasteDataDeleted  AuditAction = "waste_data_deleted"
	AuditActionScenarioSaved     AuditAction = "scenario_saved"
	AuditActionTechnologyCreated AuditAction = "technology_created"
	AuditActionAccessDenied      AuditAction = "access_denied"
)

// AuditLog represents an audit trail entry shown in the logs module
type AuditLog struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	UserID       *uuid.UUID      `json:"user_id,omitempty" db:"user_id"`
	Action       AuditAction     `json:"action" db:"action"`
	ResourceType string          `json:"resource_type" db:"resource_type"` // site, waste_data, user_role, etc.
	ResourceID   *uuid.UUID      `json:"resource_id,omitempty" db:"resource_id"`
	Details      json.RawMessage `json:"details" db:"details"` // JSONB for flexible metadata
	IPAddress    string          `json:"ip_address" db:"ip_address"`
	UserAgent    string          `json:"user_agent" db:"user_agent"`
	RequestID    string          `json:"request_id" db:"request_id"`
	Timestamp    time.Time       `json:"timestamp" db:"timestamp"`
}

// NewAuditLog creates a new AuditLog instance
func NewAuditLog(action AuditAction, resourceType string) *AuditLog {
	return &AuditLog{
		ID:           uuid.New(),
		Action:       action,
		ResourceType: resourceType,
		Timestamp:    time.Now(),
	}
}

// WithUser sets the acting user
func (a *AuditLog) WithUser(userID uuid.UUID) *AuditLog {
	a.UserID = &userID
	return a
}

// WithResource sets the resource ID
func (a *AuditLog) WithResource(resourceID uuid.UUID) *AuditLog {
	a.ResourceID = &resourceID
	return a
}

// WithDetails sets the details
func (a *AuditLog) WithDetails(details interface{}) *AuditLog {
	if data, err := json.Marshal(details); err == nil {
		a.Details = data
	}
	return a
}

// WithRequest sets request metadata
func (a *AuditLog) WithRequest(requestID, ipAddress, userAgent string) *AuditLog {
	a.RequestID = requestID
	a.IPAddress = ipAddress
	a.UserAgent = userAgent
	return a
}
