package database

import (
	"encoding/json"
	"log/slog"

	"job-tracker/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// helper для записи в журнал аудита, вызывается внутри транзакции сервиса
func CreateAuditLog(tx *gorm.DB, actorID *uint, entity models.AuditEntity, entityID uint, action string, details map[string]any) error {
	record := models.AuditLog{
		UserID:   actorID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
	}

	if len(details) > 0 {
		b, err := json.Marshal(details)
		if err != nil {
			slog.Warn("audit details not serializable", "entity", entity, "error", err)
		} else {
			record.Details = datatypes.JSON(b)
		}
	}

	return tx.Create(&record).Error
}

func ListAuditLogs(db *gorm.DB, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.
		Preload("User").
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
