package controllers

import (
	"fmt"
	"net/http"
	"time"

	dbpkg "ecclesia/db"
	"ecclesia/models"

	"github.com/gin-gonic/gin"
)

// POST /api/contributions (feature "contributions" + permissão manage_contributions)
func CreateContribution(c *gin.Context) {
	var contribution models.Contribution
	if err := c.Bind(&contribution); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if contribution.BranchID <= 0 {
		RespondError(c, "branch_id é obrigatório", http.StatusBadRequest)
		return
	}
	if contribution.AmountCents <= 0 {
		RespondError(c, "amount_cents deve ser positivo", http.StatusBadRequest)
		return
	}
	if contribution.ReceivedAt == nil {
		now := time.Now()
		contribution.ReceivedAt = &now
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.Branch{}, contribution.BranchID).Error; err != nil {
		RespondError(c, "filial não encontrada", http.StatusNotFound)
		return
	}

	if err := db.Create(&contribution).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"contribution": contribution})
}

// GET /api/contributions?branch_id=123 (feature "contributions")
func GetContributions(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var contributions []models.Contribution
	q := db.Order("received_at desc").Limit(200)
	if v := c.Query("branch_id"); v != "" {
		q = q.Where("branch_id = ?", v)
	}
	if err := q.Find(&contributions).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"contributions": contributions})
}

type monthlyFinanceRow struct {
	Kind  string `json:"kind"`
	Total int64  `json:"total_cents"`
	Count int64  `json:"count"`
}

// GET /api/finances/dashboard/monthly (feature "finances" + permissão manage_finances)
// Query params:
// - month=YYYY-MM (optional, default: mês atual)
// - branch_id (optional)
// Retorna o total de entradas do mês agrupado por tipo (dízimo/oferta/campanha).
func GetFinanceMonthlySummary(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	monthStart, monthEnd, monthLabel, ok := parseMonthParam(c)
	if !ok {
		return
	}

	q := db.Table("contributions").
		Select("kind, sum(amount_cents) as total, count(*) as count").
		Where("received_at >= ? AND received_at < ?", monthStart, monthEnd).
		Group("kind").
		Order("kind asc")
	if v := c.Query("branch_id"); v != "" {
		q = q.Where("branch_id = ?", v)
	}

	var rows []monthlyFinanceRow
	if err := q.Scan(&rows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var totalCents int64
	for _, r := range rows {
		totalCents += r.Total
	}

	RespondSuccess(c, gin.H{
		"month":       monthLabel,
		"total_cents": totalCents,
		"by_kind":     rows,
	})
}

// parseMonthParam lê ?month=YYYY-MM e devolve [início, fim) do mês em hora local.
func parseMonthParam(c *gin.Context) (time.Time, time.Time, string, bool) {
	now := time.Now()
	label := c.DefaultQuery("month", fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month())))

	parsed, err := time.ParseInLocation("2006-01", label, time.Local)
	if err != nil {
		RespondError(c, "month inválido (use YYYY-MM)", http.StatusBadRequest)
		return time.Time{}, time.Time{}, "", false
	}

	start := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	return start, end, label, true
}
