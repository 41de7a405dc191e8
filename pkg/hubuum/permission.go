package hubuum

import "time"

// Permission is one permission grant on a namespace. Each boolean covers a
// single operation on one resource kind within the namespace.
type Permission struct {
	ID          int `json:"id"`
	NamespaceID int `json:"namespace_id"`
	GroupID     int `json:"group_id"`

	HasReadNamespace     bool `json:"has_read_namespace"`
	HasUpdateNamespace   bool `json:"has_update_namespace"`
	HasDeleteNamespace   bool `json:"has_delete_namespace"`
	HasDelegateNamespace bool `json:"has_delegate_namespace"`

	HasCreateClass bool `json:"has_create_class"`
	HasReadClass   bool `json:"has_read_class"`
	HasUpdateClass bool `json:"has_update_class"`
	HasDeleteClass bool `json:"has_delete_class"`

	HasCreateObject bool `json:"has_create_object"`
	HasReadObject   bool `json:"has_read_object"`
	HasUpdateObject bool `json:"has_update_object"`
	HasDeleteObject bool `json:"has_delete_object"`

	HasCreateClassRelation bool `json:"has_create_class_relation"`
	HasReadClassRelation   bool `json:"has_read_class_relation"`
	HasUpdateClassRelation bool `json:"has_update_class_relation"`
	HasDeleteClassRelation bool `json:"has_delete_class_relation"`

	HasCreateObjectRelation bool `json:"has_create_object_relation"`
	HasReadObjectRelation   bool `json:"has_read_object_relation"`
	HasUpdateObjectRelation bool `json:"has_update_object_relation"`
	HasDeleteObjectRelation bool `json:"has_delete_object_relation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupPermission is one entry of a namespace's permission listing: the
// grantee group together with its grant.
type GroupPermission struct {
	Group      Group      `json:"group"`
	Permission Permission `json:"permission"`
}
