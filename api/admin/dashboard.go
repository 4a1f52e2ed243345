package admin

import (
	"errors"
	"net/http"
	"strconv"

	"fairfoul_server/handling"
	"fairfoul_server/lib"
	"fairfoul_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (arm *AdminRoutesManager) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := arm.adminService.GetDashboard()
	if err != nil {
		arm.logger.Error("Failed to build dashboard", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load dashboard"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(dashboard),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := arm.adminService.GetMetrics()
	if err != nil {
		arm.logger.Error("Failed to compute metrics", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load metrics"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(metrics),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) ListActivities(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseActivityListOptions(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid query parameters"), gecho.Send())
		return
	}

	result, err := arm.adminService.ListActivities(opts)
	if err != nil {
		arm.logger.Error("Failed to list activities", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch activities"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) GetActivity(w http.ResponseWriter, r *http.Request) {
	activityId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid activity ID"), gecho.Send())
		return
	}

	activity, err := arm.adminService.GetActivity(activityId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Activity not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to fetch activity", gecho.Field("error", err), gecho.Field("activityID", activityId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch activity"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(activity),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) GetReport(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseReportOptions(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid query parameters"), gecho.Send())
		return
	}

	report, err := arm.adminService.Report(opts)
	if err != nil {
		if errors.Is(err, services.ErrUnknownReportType) {
			gecho.BadRequest(w, gecho.WithMessage("Unknown report type"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to build report", gecho.Field("error", err), gecho.Field("type", opts.Type))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to build report"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(report),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) ListLowStock(w http.ResponseWriter, r *http.Request) {
	threshold := 5
	if thresholdStr := r.URL.Query().Get("threshold"); thresholdStr != "" {
		if val, err := strconv.Atoi(thresholdStr); err == nil && val >= 0 {
			threshold = val
		}
	}

	products, err := arm.adminService.ListLowStock(threshold)
	if err != nil {
		arm.logger.Error("Failed to list low stock products", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch low stock products"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}
