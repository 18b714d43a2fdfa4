package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"feasibility/models"
	"feasibility/repository"
	"feasibility/services"
	"feasibility/utils"

	"github.com/gin-gonic/gin"
)

// ruleSetFor resolves :revision, falling back to the default revision when absent.
func ruleSetFor(c *gin.Context, env *Env) (models.RuleSet, bool) {
	rev := c.Param("revision")
	if rev == "" {
		rev = env.Registry.DefaultRevision()
	}
	rs, ok := env.Registry.RuleSet(rev)
	if !ok {
		utils.ErrorResponse(c, http.StatusNotFound, "unknown rule revision", rev)
		return models.RuleSet{}, false
	}
	return rs, true
}

// GetRules godoc
// @Summary      Rule tables of a revision
// @Description  Without a revision the default revision is returned
// @Tags         rules
// @Produce      json
// @Param        revision  path      string  false  "Rule revision"
// @Success      200       {object}  models.RuleSet
// @Failure      404       {object}  models.ErrorResponse
// @Router       /api/rules/{revision} [get]
func GetRules(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		rs, ok := ruleSetFor(c, env)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, rs)
	}
}

// GetRuleTemplate godoc
// @Summary      Download a revision as an editable rule workbook
// @Tags         rules
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        revision  path      string  true  "Rule revision"
// @Success      200       {file}    file    "XLSX file"
// @Failure      404       {object}  models.ErrorResponse
// @Router       /api/rules/{revision}/template [get]
func GetRuleTemplate(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		rs, ok := ruleSetFor(c, env)
		if !ok {
			return
		}

		f, err := repository.NewRuleWorkbook(rs)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Error creating rule workbook", err.Error())
			return
		}
		defer f.Close()

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=rules_%s.xlsx", rs.Revision))
		if err := f.Write(c.Writer); err != nil {
			log.Printf("[rules] template %s: %v", rs.Revision, err)
		}
	}
}

// ValidateRuleWorkbook godoc
// @Summary      Check an uploaded rule workbook
// @Description  Parses and validates the workbook. Loaded revisions are never modified.
// @Tags         rules
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Rule workbook (.xlsx)"
// @Success      200   {object}  models.RuleValidationResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      401   {object}  models.ErrorResponse
// @Failure      422   {object}  models.RuleValidationResponse
// @Router       /api/rules/validate [post]
func ValidateRuleWorkbook(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "No file uploaded", err.Error())
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		utils.ErrorResponse(c, http.StatusBadRequest, "Rule workbook must be an .xlsx file", fh.Filename)
		return
	}

	file, err := fh.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to open uploaded file", err.Error())
		return
	}
	defer file.Close()

	rs, err := repository.ReadExcelRuleSet(file)
	if err == nil {
		if rs.Revision == "" {
			rs.Revision = strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
		}
		err = services.ValidateRuleSet(rs)
	}

	resp := models.RuleValidationResponse{
		Valid:        err == nil,
		Revision:     rs.Revision,
		MatchMode:    string(rs.MatchMode),
		FSIRules:     len(rs.FSI),
		HeightRules:  len(rs.Height),
		SetbackRules: len(rs.Setback),
		ParkingRules: len(rs.Parking),
	}
	if err != nil {
		resp.Error = err.Error()
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
