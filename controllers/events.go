package controllers

import (
	"net/http"

	dbpkg "ecclesia/db"
	"ecclesia/models"

	"github.com/gin-gonic/gin"
)

// GET /api/events (feature "events")
func GetEvents(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var events []models.Event
	q := db.Order("starts_at desc").Limit(200)
	if v := c.Query("branch_id"); v != "" {
		q = q.Where("branch_id = ?", v)
	}
	if err := q.Find(&events).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"events": events})
}

// GET /api/events/:id (feature "events")
func GetEventByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var event models.Event
	if err := db.First(&event, id).Error; err != nil {
		RespondError(c, "evento não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"event": event})
}

// POST /api/events (feature "events" + permissão manage_events)
func CreateEvent(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var event models.Event
	if err := c.Bind(&event); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if event.Title == "" {
		RespondError(c, "title é obrigatório", http.StatusBadRequest)
		return
	}
	if event.BranchID <= 0 {
		RespondError(c, "branch_id é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.Branch{}, event.BranchID).Error; err != nil {
		RespondError(c, "filial não encontrada", http.StatusNotFound)
		return
	}

	if p.MemberID != nil {
		event.CreatedBy = *p.MemberID
	}

	if err := db.Create(&event).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"event": event})
}

// DELETE /api/events/:id (feature "events" + permissão manage_events)
func DeleteEvent(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}
	if err := db.Delete(&models.Event{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
