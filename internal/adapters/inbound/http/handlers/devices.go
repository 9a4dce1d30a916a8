package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/Suleiman-Moraes/device-api/internal/usecases"
	"github.com/Suleiman-Moraes/device-api/internal/usecases/commands"
	"github.com/Suleiman-Moraes/device-api/internal/usecases/queries"
	"github.com/go-chi/chi/v5"
)

const maxFieldLength = 150

type (
	createDeviceRequest struct {
		Name  string  `json:"name"`
		Brand string  `json:"brand"`
		State *string `json:"state,omitempty"`
	}

	updateDeviceRequest struct {
		Name  string `json:"name"`
		Brand string `json:"brand"`
		State string `json:"state"`
	}

	patchDeviceRequest struct {
		Name  *string `json:"name,omitempty"`
		Brand *string `json:"brand,omitempty"`
		State *string `json:"state,omitempty"`
	}

	deviceData struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Brand        string    `json:"brand"`
		State        string    `json:"state"`
		CreationTime time.Time `json:"creationTime"`
		UpdatedAt    time.Time `json:"updatedAt"`
	}

	deviceResponse struct {
		Data deviceData `json:"data"`
	}

	paginationData struct {
		Page        uint `json:"page"`
		Size        uint `json:"size"`
		TotalItems  uint `json:"totalItems"`
		TotalPages  uint `json:"totalPages"`
		HasNext     bool `json:"hasNext"`
		HasPrevious bool `json:"hasPrevious"`
	}

	deviceListResponse struct {
		Data       []deviceData   `json:"data"`
		Pagination paginationData `json:"pagination"`
	}

	DeviceHandler struct {
		app *usecases.Application
	}
)

func NewDeviceHandler(app *usecases.Application) *DeviceHandler {
	return &DeviceHandler{app: app}
}

func (h *DeviceHandler) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var req createDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	if details := validateNameAndBrand(req.Name, req.Brand); len(details) > 0 {
		writeErrorResponse(w, http.StatusBadRequest, codeValidation, "invalid device payload", details...)

		return
	}

	state := model.StateAvailable
	if req.State != nil {
		parsed, err := model.ParseState(*req.State)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, codeInvalidState, err.Error())

			return
		}
		state = parsed
	}

	device, err := h.app.Commands.CreateDevice.Handle(r.Context(), commands.CreateDeviceCommand{
		Name:  strings.TrimSpace(req.Name),
		Brand: strings.TrimSpace(req.Brand),
		State: state,
	})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/devices/%s", device.ID.String()))
	writeJSONResponse(w, http.StatusCreated, toDeviceResponse(device))
}

func (h *DeviceHandler) GetDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDeviceID(w, r)
	if !ok {
		return
	}

	device, err := h.app.Queries.GetDevice.Execute(r.Context(), queries.GetDeviceQuery{ID: id})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceResponse(device))
}

func (h *DeviceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidParams, err.Error())

		return
	}

	page, err := h.app.Queries.ListDevices.Execute(r.Context(), queries.ListDevicesQuery{Filter: filter})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceListResponse(page))
}

func (h *DeviceHandler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDeviceID(w, r)
	if !ok {
		return
	}

	var req updateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	if details := validateNameAndBrand(req.Name, req.Brand); len(details) > 0 {
		writeErrorResponse(w, http.StatusBadRequest, codeValidation, "invalid device payload", details...)

		return
	}

	state, err := model.ParseState(req.State)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidState, err.Error())

		return
	}

	device, err := h.app.Commands.UpdateDevice.Handle(r.Context(), commands.UpdateDeviceCommand{
		ID:    id,
		Name:  strings.TrimSpace(req.Name),
		Brand: strings.TrimSpace(req.Brand),
		State: state,
	})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceResponse(device))
}

func (h *DeviceHandler) PatchDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDeviceID(w, r)
	if !ok {
		return
	}

	var req patchDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	proposal := model.ChangeProposal{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || utf8.RuneCountInString(name) > maxFieldLength {
			writeErrorResponse(w, http.StatusBadRequest, codeValidation, "invalid device payload",
				fmt.Sprintf("name must be between 1 and %d characters", maxFieldLength))

			return
		}
		proposal.Name = &name
	}

	if req.Brand != nil {
		brand := strings.TrimSpace(*req.Brand)
		if brand == "" || utf8.RuneCountInString(brand) > maxFieldLength {
			writeErrorResponse(w, http.StatusBadRequest, codeValidation, "invalid device payload",
				fmt.Sprintf("brand must be between 1 and %d characters", maxFieldLength))

			return
		}
		proposal.Brand = &brand
	}

	if req.State != nil {
		state, err := model.ParseState(*req.State)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, codeInvalidState, err.Error())

			return
		}
		proposal.State = &state
	}

	device, err := h.app.Commands.PatchDevice.Handle(r.Context(), commands.PatchDeviceCommand{
		ID:      id,
		Changes: proposal,
	})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceResponse(device))
}

func (h *DeviceHandler) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDeviceID(w, r)
	if !ok {
		return
	}

	if _, err := h.app.Commands.DeleteDevice.Handle(r.Context(), commands.DeleteDeviceCommand{ID: id}); err != nil {
		writeDomainError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseDeviceID(w http.ResponseWriter, r *http.Request) (model.DeviceID, bool) {
	id, err := model.ParseDeviceID(chi.URLParam(r, "deviceID"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidID, msgInvalidDeviceID)

		return model.DeviceID{}, false
	}

	return id, true
}

func validateNameAndBrand(name, brand string) []string {
	var details []string

	if trimmed := strings.TrimSpace(name); trimmed == "" || utf8.RuneCountInString(trimmed) > maxFieldLength {
		details = append(details, fmt.Sprintf("name must be between 1 and %d characters", maxFieldLength))
	}

	if trimmed := strings.TrimSpace(brand); trimmed == "" || utf8.RuneCountInString(trimmed) > maxFieldLength {
		details = append(details, fmt.Sprintf("brand must be between 1 and %d characters", maxFieldLength))
	}

	return details
}

// filterFromQuery maps the list query string onto a DeviceFilter. Every
// parameter is optional; unparseable numerics and unknown states are
// rejected rather than silently dropped.
func filterFromQuery(r *http.Request) (model.DeviceFilter, error) {
	query := r.URL.Query()
	filter := model.DefaultDeviceFilter()

	filter.Brand = query.Get("brand")
	filter.Name = query.Get("name")
	filter.SearchText = query.Get("searchText")

	if raw := query.Get("state"); raw != "" {
		state, err := model.ParseState(raw)
		if err != nil {
			return model.DeviceFilter{}, err
		}
		filter.State = &state
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return model.DeviceFilter{}, fmt.Errorf("invalid page: %s", raw)
		}
		filter.Page = uint(page)
	}

	if raw := query.Get("size"); raw != "" {
		size, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || size == 0 {
			return model.DeviceFilter{}, fmt.Errorf("invalid size: %s", raw)
		}
		filter.Size = uint(size)
	}

	if raw := query.Get("paginate"); raw != "" {
		paginate, err := strconv.ParseBool(raw)
		if err != nil {
			return model.DeviceFilter{}, fmt.Errorf("invalid paginate: %s", raw)
		}
		filter.Paginate = paginate
	}

	if property := query.Get("property"); property != "" {
		filter.SortProperty = property
	}

	if raw := query.Get("direction"); raw != "" {
		switch strings.ToUpper(raw) {
		case string(model.SortAsc):
			filter.SortDirection = model.SortAsc
		case string(model.SortDesc):
			filter.SortDirection = model.SortDesc
		default:
			return model.DeviceFilter{}, fmt.Errorf("invalid direction: %s", raw)
		}
	}

	return filter, nil
}

func toDeviceData(device *model.Device) deviceData {
	return deviceData{
		ID:           device.ID.String(),
		Name:         device.Name,
		Brand:        device.Brand,
		State:        device.State.String(),
		CreationTime: device.CreatedAt,
		UpdatedAt:    device.UpdatedAt,
	}
}

func toDeviceResponse(device *model.Device) deviceResponse {
	return deviceResponse{Data: toDeviceData(device)}
}

func toDeviceListResponse(page *model.DevicePage) deviceListResponse {
	data := make([]deviceData, 0, len(page.Items))
	for index := range page.Items {
		data = append(data, toDeviceData(page.Items[index]))
	}

	return deviceListResponse{
		Data: data,
		Pagination: paginationData{
			Page:        page.Pagination.Page,
			Size:        page.Pagination.Size,
			TotalItems:  page.Pagination.TotalItems,
			TotalPages:  page.Pagination.TotalPages,
			HasNext:     page.Pagination.HasNext,
			HasPrevious: page.Pagination.HasPrevious,
		},
	}
}
