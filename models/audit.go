package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditLog struct {
	gorm.Model

	ActorID  uint           `gorm:"index" json:"actor_id"`
	Action   string         `gorm:"size:32;index" json:"action"`
	Entity   string         `gorm:"size:32" json:"entity"`
	EntityID uint           `json:"entity_id"`
	Details  datatypes.JSON `json:"details"`
}
