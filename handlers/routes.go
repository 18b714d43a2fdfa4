package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the feasibility API on r.
func RegisterRoutes(r gin.IRouter, env *Env) {
	api := r.Group("/api")

	// ==================== SYSTEM ====================
	api.GET("/health", HealthCheck(env))
	api.GET("/building-types", GetBuildingTypes)

	// ==================== AUTH ====================
	api.POST("/login", AdminLogin(env))

	// ==================== RULES ====================
	api.GET("/rules", GetRules(env))
	api.GET("/rules/:revision", GetRules(env))
	api.GET("/rules/:revision/template", GetRuleTemplate(env))
	api.POST("/rules/validate", RequireAdmin(env), ValidateRuleWorkbook)

	// ==================== FEASIBILITY ====================
	api.POST("/feasibility", EvaluateFeasibility(env))
	api.POST("/feasibility/pdf", GenerateFeasibilityPDF(env))
	api.POST("/feasibility/xlsx", ExportFeasibilityExcel(env))
	api.GET("/feasibility/history", GetFeasibilityHistory(env))
	api.GET("/feasibility/qr/:report_id", GetReportQRCode(env))
}
