package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"feasibility/models"
	"feasibility/services"
	"feasibility/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// respondEvaluationError maps evaluator errors onto HTTP statuses.
func respondEvaluationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid input", err.Error())
	case errors.Is(err, services.ErrNoMatchingRule):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "value outside supported range", err.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "evaluation failed", err.Error())
	}
}

// evaluateRequest binds the form, evaluates it against the requested revision
// and records the report. It writes the error response itself and returns
// false when the request cannot continue.
func evaluateRequest(c *gin.Context, env *Env) (services.Report, bool) {
	var req models.FeasibilityRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err.Error())
		return services.Report{}, false
	}

	started := time.Now()
	rep, err := evaluate(env, c.Query("revision"), req)
	env.Metrics.ObserveEvaluation(metricsLabel(req.BuildingType), started, err)
	if err != nil {
		log.Printf("[evaluate] %s plot=%.2f road=%.2f: %v", req.BuildingType, req.PlotArea, req.RoadWidth, err)
		respondEvaluationError(c, err)
		return services.Report{}, false
	}

	if env.History != nil {
		if err := env.History.Save(c.Request.Context(), rep); err != nil {
			log.Printf("[evaluate] failed to record report %s: %v", rep.ID, err)
		}
	}
	return rep, true
}

// metricsLabel keeps the building_type label set bounded.
func metricsLabel(raw string) string {
	bt, err := models.ParseBuildingType(raw)
	if err != nil {
		return "unknown"
	}
	return string(bt)
}

func evaluate(env *Env, revision string, req models.FeasibilityRequest) (services.Report, error) {
	bt, err := models.ParseBuildingType(req.BuildingType)
	if err != nil {
		return services.Report{}, fmt.Errorf("%w: %v", services.ErrInvalidInput, err)
	}
	ev, err := env.Registry.Evaluator(revision)
	if err != nil {
		return services.Report{}, err
	}
	res, err := ev.Evaluate(models.ProjectInput{
		ProjectName:  req.ProjectName,
		BuildingType: bt,
		PlotArea:     req.PlotArea,
		RoadWidth:    req.RoadWidth,
	})
	if err != nil {
		return services.Report{}, err
	}

	id := ""
	if env.NewID != nil {
		id = env.NewID()
	} else {
		id = uuid.New().String()
	}
	return services.Report{ID: id, GeneratedAt: env.now(), Result: res}, nil
}

// EvaluateFeasibility godoc
// @Summary      Evaluate plot feasibility
// @Description  Computes FSI, height limit, floors, setbacks, parking, area statement and fire classification
// @Tags         feasibility
// @Accept       json
// @Produce      json
// @Param        revision  query     string                     false  "Rule revision (default revision when empty)"
// @Param        body      body      models.FeasibilityRequest  true   "Plot parameters"
// @Success      200       {object}  models.FeasibilityResponse
// @Failure      400       {object}  models.ErrorResponse
// @Failure      422       {object}  models.ErrorResponse
// @Router       /api/feasibility [post]
func EvaluateFeasibility(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		rep, ok := evaluateRequest(c, env)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, models.FeasibilityResponse{
			ReportID:    rep.ID,
			GeneratedAt: rep.GeneratedAt,
			Result:      rep.Result.Rounded(),
			Note:        models.FeasibilityNote,
		})
	}
}

// GenerateFeasibilityPDF godoc
// @Summary      Download feasibility report as PDF
// @Tags         feasibility
// @Accept       json
// @Produce      application/pdf
// @Param        revision  query  string                     false  "Rule revision"
// @Param        body      body   models.FeasibilityRequest  true   "Plot parameters"
// @Success      200  {file}    file  "PDF file"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Router       /api/feasibility/pdf [post]
func GenerateFeasibilityPDF(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		rep, ok := evaluateRequest(c, env)
		if !ok {
			return
		}

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=feasibility_%s.pdf", rep.ID))
		if err := services.WritePDF(c.Writer, rep); err != nil {
			log.Printf("[report] pdf %s: %v", rep.ID, err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to generate PDF", err.Error())
			return
		}
		env.Metrics.ObserveReport("pdf")
	}
}

// ExportFeasibilityExcel godoc
// @Summary      Download feasibility report as Excel workbook
// @Tags         feasibility
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        revision  query  string                     false  "Rule revision"
// @Param        body      body   models.FeasibilityRequest  true   "Plot parameters"
// @Success      200  {file}    file  "XLSX file"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Router       /api/feasibility/xlsx [post]
func ExportFeasibilityExcel(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		rep, ok := evaluateRequest(c, env)
		if !ok {
			return
		}

		f, err := services.NewReportWorkbook(rep)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Error creating Excel file", err.Error())
			return
		}
		defer f.Close()

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=feasibility_%s.xlsx", rep.ID))
		if err := f.Write(c.Writer); err != nil {
			log.Printf("[report] xlsx %s: %v", rep.ID, err)
			return
		}
		env.Metrics.ObserveReport("xlsx")
	}
}

// GetFeasibilityHistory godoc
// @Summary      Recent evaluations
// @Tags         feasibility
// @Produce      json
// @Param        limit  query     int  false  "Maximum records (default 20, max 200)"
// @Success      200    {array}   models.EvaluationRecordGorm
// @Failure      503    {object}  models.ErrorResponse
// @Router       /api/feasibility/history [get]
func GetFeasibilityHistory(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if env.History == nil {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "evaluation history is disabled", "no database configured")
			return
		}

		limit := defaultHistoryLimit
		if s := c.Query("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				utils.ErrorResponse(c, http.StatusBadRequest, "invalid limit", s)
				return
			}
			if n > maxHistoryLimit {
				n = maxHistoryLimit
			}
			limit = n
		}

		records, err := env.History.Recent(c.Request.Context(), limit)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to fetch history", err.Error())
			return
		}
		if records == nil {
			records = []models.EvaluationRecordGorm{}
		}
		c.JSON(http.StatusOK, records)
	}
}

// GetBuildingTypes godoc
// @Summary      Building types accepted by the evaluator
// @Tags         feasibility
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/building-types [get]
func GetBuildingTypes(c *gin.Context) {
	c.JSON(http.StatusOK, models.BuildingTypes)
}

// HealthCheck godoc
// @Summary      Service health
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Router       /api/health [get]
func HealthCheck(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:          "ok",
			DefaultRevision: env.Registry.DefaultRevision(),
			Revisions:       env.Registry.Revisions(),
			History:         env.History != nil,
		})
	}
}
