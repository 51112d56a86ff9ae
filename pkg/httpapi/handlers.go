package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jakechorley/escalas/pkg/core/catalog"
	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/core/services"
)

type upcomingWeekDTO struct {
	WeekStart string `json:"weekStart"`
	Href      string `json:"href"`
}

func (s *Server) listPublicWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := services.UpcomingWeeks(s.opts.ServiceWeeks, s.opts.Now(), s.opts.UpcomingWeeks)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result := make([]upcomingWeekDTO, 0, len(weeks))
	for _, week := range weeks {
		result = append(result, upcomingWeekDTO{WeekStart: week, Href: "/public/weeks/" + week})
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getPublicWeek(w http.ResponseWriter, r *http.Request) {
	view, err := services.GetPublicWeekView(r.Context(), s.public, s.logger, mux.Vars(r)["week"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekDTO(view))
}

func (s *Server) getWeek(w http.ResponseWriter, r *http.Request) {
	view, err := services.GetWeekView(r.Context(), s.database, s.logger, mux.Vars(r)["week"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekDTO(view))
}

func (s *Server) getAvailable(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	servants, err := services.AvailableServants(r.Context(), s.database, s.logger,
		mux.Vars(r)["week"], model.Day(query.Get("day")), query.Get("exclude"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toServantDTOs(servants))
}

func (s *Server) createAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := services.CreateAssignment(r.Context(), s.database, s.logger, services.CreateAssignmentInput{
		WeekStart: req.WeekStart,
		Area:      req.Area,
		Day:       model.Day(req.Day),
		Function:  req.Function,
		ServantID: req.ServantID,
		CreatedBy: req.CreatedBy,
	})
	recordOperation("create", err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMutationDTO(result))
}

func (s *Server) moveAssignment(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	target, err := catalog.ParseDropZone(req.DropZone)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", errInvalidRequest, err))
		return
	}

	result, err := services.MoveAssignment(r.Context(), s.database, s.logger, mux.Vars(r)["id"], target)
	recordOperation("move", err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMutationDTO(result))
}

func (s *Server) lockAssignment(w http.ResponseWriter, r *http.Request) {
	result, err := services.LockAssignment(r.Context(), s.database, s.logger, mux.Vars(r)["id"])
	recordOperation("lock", err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMutationDTO(result))
}

func (s *Server) unlockAssignment(w http.ResponseWriter, r *http.Request) {
	result, err := services.UnlockAssignment(r.Context(), s.database, s.logger, mux.Vars(r)["id"])
	recordOperation("unlock", err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMutationDTO(result))
}

func (s *Server) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	result, err := services.DeleteAssignment(r.Context(), s.database, s.logger, mux.Vars(r)["id"])
	recordOperation("delete", err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMutationDTO(result))
}

func (s *Server) listServants(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if v := r.URL.Query().Get("active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: active must be a boolean", errInvalidRequest))
			return
		}
		activeOnly = parsed
	}

	servants, err := services.ListServants(r.Context(), s.database, s.logger, activeOnly)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toServantDTOs(servants))
}

func (s *Server) createServant(w http.ResponseWriter, r *http.Request) {
	var req servantRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	servant, err := services.CreateServant(r.Context(), s.database, s.logger, services.ServantInput(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toServantDTO(*servant))
}

func (s *Server) updateServant(w http.ResponseWriter, r *http.Request) {
	var req servantRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	servant, err := services.UpdateServant(r.Context(), s.database, s.logger, mux.Vars(r)["id"], services.ServantInput(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toServantDTO(*servant))
}

func (s *Server) removeServant(w http.ResponseWriter, r *http.Request) {
	outcome, err := services.RemoveServant(r.Context(), s.database, s.logger, mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": string(outcome)})
}

func (s *Server) getServantReferences(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	referenced, err := services.IsServantReferenced(r.Context(), s.database, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"servantId": id, "referenced": referenced})
}
