package employee

import (
	"net/http"
	"staffdir/infras/otel"
	"staffdir/internal/domains/employee/model/dto"
	"staffdir/internal/domains/employee/service"
	"staffdir/shared/constant"
	"staffdir/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Employee
	otel    otel.Otel
}

func New(service service.Employee, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/employees", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetEmployeeByID)
	})
}

// GetEmployeeByID resolves an employee id.
// @Summary Get an employee
// @Description Look up the directory entry bookings are attributed to.
// @Tags Employee
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /employees/{id} [get]
func (handler *Handler) GetEmployeeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmployeeByID")
	defer scope.End()

	var employee dto.EmployeeResponse

	employee, err := handler.service.Lookup(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithPayload(w, http.StatusOK, employee)
}
