package hrest

import (
	"encoding/json"
	"net/http"

	"settlement-service/internal/usecase"
	"settlement-service/pkg/response"

	"github.com/go-playground/validator/v10"
)

type AdminHandler struct {
	settingsUC *usecase.SettingsUsecase
	reportUC   *usecase.ReportUsecase
	validate   *validator.Validate
}

func NewAdminHandler(settingsUC *usecase.SettingsUsecase, reportUC *usecase.ReportUsecase) *AdminHandler {
	return &AdminHandler{
		settingsUC: settingsUC,
		reportUC:   reportUC,
		validate:   validator.New(),
	}
}

// ListSettings returns all platform settings keyed by name.
// GET /admin/settings
func (h *AdminHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUC.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	result := make(map[string]interface{}, len(settings))
	for _, s := range settings {
		result[s.Key] = s
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"settings": result})
}

type settingJSON struct {
	Key         string `json:"key" validate:"required"`
	Value       string `json:"value" validate:"required"`
	Description string `json:"description"`
}

// UpsertSetting creates or updates one setting. PUT /admin/settings
func (h *AdminHandler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	var in settingJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "key and value required")
		return
	}

	s, err := h.settingsUC.Upsert(r.Context(), in.Key, in.Value, in.Description)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, s)
}

// CommissionReport aggregates completed splits by recipient type.
// GET /admin/reports/commissions
func (h *AdminHandler) CommissionReport(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reportUC.CommissionTotals(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"totals": totals})
}
