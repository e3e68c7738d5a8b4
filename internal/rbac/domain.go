// Package rbac resolves role-based permissions for the filing and CRM
// surfaces.
package rbac

import (
	"errors"
	"time"
)

// Role represents a high-level permission grouping.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Well-known permission names.
const (
	PermWorkflowView   = "filing.workflow.view"
	PermWorkflowManage = "filing.workflow.manage"
	PermExportRun      = "filing.export.run"
	PermCRMView        = "crm.view"
	PermCRMManage      = "crm.manage"
	PermUsersManage    = "admin.users.manage"
)

// ErrNotFound indicates that the requested record does not exist.
var ErrNotFound = errors.New("rbac: not found")
