package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/ethan-kaseff/seating-chart/pkg/errors"
	"github.com/ethan-kaseff/seating-chart/pkg/excel"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/arrange"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/editor"
)

// =============================================================================
// Responses
// =============================================================================

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeEventNotFound,
		apperrors.ErrCodeGuestNotFound, apperrors.ErrCodeTableNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidAction,
		apperrors.ErrCodeInvalidEventID, apperrors.ErrCodeInvalidLayout,
		apperrors.ErrCodeInvalidColor, apperrors.ErrCodeInvalidWorkbook:
		status = http.StatusBadRequest
	case apperrors.ErrCodeStore:
		status = http.StatusBadGateway
	case "":
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	}})
}

type eventResponse struct {
	ID       string           `json:"id"`
	Document seating.Document `json:"document"`
}

// =============================================================================
// Event Lifecycle
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
			return
		}
	}
	if body.ID == "" {
		body.ID = uuid.NewString()
	}
	if err := apperrors.ValidateEventID(body.ID); err != nil {
		s.writeError(w, err)
		return
	}

	if _, err := s.store.Load(r.Context(), body.ID); err == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "event %s already exists", body.ID))
		return
	}

	doc := seating.NewDocument()
	if err := s.store.Save(r.Context(), body.ID, doc); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "save event %s", body.ID))
		return
	}

	s.mu.Lock()
	s.sessions[body.ID] = s.newEditor(body.ID, doc)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, eventResponse{ID: body.ID, Document: doc})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "list events"))
		return
	}
	sort.Strings(ids)
	writeJSON(w, http.StatusOK, map[string][]string{"events": ids})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ed, err := s.session(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ed.Document())
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	ed, err := s.session(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var doc seating.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode document"))
		return
	}

	ed.Dispatch(seating.SetDocument{Document: doc.RefreshSeatCaches()})
	writeJSON(w, http.StatusOK, ed.Document())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	if err := apperrors.ValidateEventID(eventID); err != nil {
		s.writeError(w, err)
		return
	}

	s.dropSession(eventID)
	if err := s.store.Delete(r.Context(), eventID); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete event %s", eventID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Actions
// =============================================================================

type actionEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	ed, err := s.session(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var env actionEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidAction, err, "decode action"))
		return
	}

	changed, err := applyAction(ed, env)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"changed":  changed,
		"document": ed.Document(),
	})
}

// applyAction decodes the payload for the named action type and runs it
// against the session. Creation types go through the editor's entity
// constructors so generated ids, names, and colors match the CLI.
func applyAction(ed *editor.Editor, env actionEnvelope) (bool, error) {
	payload := env.Payload
	if payload == nil {
		payload = json.RawMessage("{}")
	}

	switch env.Type {
	case "add_table":
		var body struct {
			Name  string `json:"name"`
			Seats int    `json:"seats"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		if body.Seats != 0 {
			if err := apperrors.ValidateSeatCount(body.Seats); err != nil {
				return false, err
			}
		}
		ed.AddTable(body.Seats, body.Name)
		return true, nil

	case "add_guest":
		var body struct {
			Name    string   `json:"name"`
			Group   string   `json:"group"`
			Meal    string   `json:"meal"`
			Dietary []string `json:"dietary"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		if err := apperrors.ValidateGuestName(body.Name); err != nil {
			return false, err
		}
		ed.AddGuest(body.Name, body.Group, body.Meal, body.Dietary)
		return true, nil

	case "add_object":
		var body struct {
			Type  string  `json:"type"`
			Label string  `json:"label"`
			X     float64 `json:"x"`
			Y     float64 `json:"y"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		ed.AddObject(seating.ObjectType(body.Type), body.Label, body.X, body.Y)
		return true, nil

	case "update_table":
		var body struct {
			ID    string   `json:"id"`
			Name  *string  `json:"name"`
			X     *float64 `json:"x"`
			Y     *float64 `json:"y"`
			Seats *int     `json:"seats"`
			Color *string  `json:"color"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		if body.Color != nil {
			if err := apperrors.ValidateColor(*body.Color); err != nil {
				return false, err
			}
		}
		patch := seating.TablePatch{Name: body.Name, X: body.X, Y: body.Y, Color: body.Color}
		if body.Seats != nil {
			if err := apperrors.ValidateSeatCount(*body.Seats); err != nil {
				return false, err
			}
			seats := make([]seating.Seat, *body.Seats)
			patch.Seats = &seats
		}
		return ed.Dispatch(seating.UpdateTable{ID: body.ID, Patch: patch}), nil

	case "update_guest":
		var body struct {
			ID      string    `json:"id"`
			Name    *string   `json:"name"`
			Group   *string   `json:"group"`
			Meal    *string   `json:"meal"`
			Dietary *[]string `json:"dietary"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		if body.Name != nil {
			if err := apperrors.ValidateGuestName(*body.Name); err != nil {
				return false, err
			}
		}
		patch := seating.GuestPatch{Name: body.Name, Group: body.Group, Meal: body.Meal, Dietary: body.Dietary}
		return ed.Dispatch(seating.UpdateGuest{ID: body.ID, Patch: patch}), nil

	case "update_object":
		var body struct {
			ID           string              `json:"id"`
			Type         *seating.ObjectType `json:"type"`
			Label        *string             `json:"label"`
			X            *float64            `json:"x"`
			Y            *float64            `json:"y"`
			Width        *float64            `json:"width"`
			Height       *float64            `json:"height"`
			Color        *string             `json:"color"`
			Padding      *seating.Padding    `json:"padding"`
			ClearPadding bool                `json:"clearPadding"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		patch := seating.ObjectPatch{
			Type:         body.Type,
			Label:        body.Label,
			X:            body.X,
			Y:            body.Y,
			Width:        body.Width,
			Height:       body.Height,
			Color:        body.Color,
			Padding:      body.Padding,
			ClearPadding: body.ClearPadding,
		}
		return ed.Dispatch(seating.UpdateObject{ID: body.ID, Patch: patch}), nil

	case "delete_table", "delete_guest", "delete_object":
		var body struct {
			ID string `json:"id"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		var action seating.Action
		switch env.Type {
		case "delete_table":
			action = seating.DeleteTable{ID: body.ID}
		case "delete_guest":
			action = seating.DeleteGuest{ID: body.ID}
		default:
			action = seating.DeleteObject{ID: body.ID}
		}
		return ed.Dispatch(action), nil

	case "assign_guest":
		var body struct {
			GuestID   string `json:"guestId"`
			TableID   string `json:"tableId"`
			SeatIndex int    `json:"seatIndex"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		return ed.Dispatch(seating.AssignGuest{
			GuestID:   body.GuestID,
			TableID:   body.TableID,
			SeatIndex: body.SeatIndex,
		}), nil

	case "unassign_guest":
		var body struct {
			GuestID string `json:"guestId"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		return ed.Dispatch(seating.UnassignGuest{GuestID: body.GuestID}), nil

	case "set_zoom":
		var body struct {
			Zoom float64 `json:"zoom"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		return ed.Dispatch(seating.SetZoom{Zoom: body.Zoom}), nil

	case "set_floor_size":
		var body struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		}
		if err := decodePayload(payload, &body); err != nil {
			return false, err
		}
		if err := apperrors.ValidateFloorSize(body.Width, body.Height); err != nil {
			return false, err
		}
		return ed.Dispatch(seating.SetFloorSize{Width: body.Width, Height: body.Height}), nil

	default:
		return false, apperrors.New(apperrors.ErrCodeInvalidAction, "unknown action type %q", env.Type)
	}
}

func decodePayload(payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidAction, err, "decode action payload")
	}
	return nil
}

// =============================================================================
// Engines
// =============================================================================

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	ed, err := s.session(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.opts.Arrange
	if r.ContentLength > 0 {
		var body struct {
			Layout          *string  `json:"layout"`
			Spacing         *float64 `json:"spacing"`
			ObjectClearance *float64 `json:"objectClearance"`
			MaxColumns      *int     `json:"maxColumns"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode arrange options"))
			return
		}
		if body.Layout != nil {
			switch arrange.Layout(*body.Layout) {
			case arrange.LayoutGrid, arrange.LayoutStaggered:
				opts.Layout = arrange.Layout(*body.Layout)
			default:
				s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidLayout, "unknown layout %q", *body.Layout))
				return
			}
		}
		if body.Spacing != nil {
			opts.Spacing = *body.Spacing
		}
		if body.ObjectClearance != nil {
			opts.ObjectClearance = *body.ObjectClearance
		}
		if body.MaxColumns != nil {
			opts.MaxColumns = *body.MaxColumns
		}
	}

	acceptResize := r.URL.Query().Get("accept_resize") == "true"

	plan := arrange.Compute(ed.Document(), opts)
	ed.Arrange(opts, func(arrange.Proposal) bool { return acceptResize })

	var proposal *proposalBody
	if plan.Proposal != nil {
		proposal = &proposalBody{
			Width:    plan.Proposal.Width,
			Height:   plan.Proposal.Height,
			TooSmall: plan.Proposal.TooSmall,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"proposal": proposal,
		"resized":  acceptResize && proposal != nil,
		"document": ed.Document(),
	})
}

// proposalBody is the wire form of a floor resize proposal.
type proposalBody struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	TooSmall bool    `json:"tooSmall"`
}

func (s *Server) handleAutoSeat(w http.ResponseWriter, r *http.Request) {
	ed, err := s.session(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	assigned := ed.AutoSeat()
	writeJSON(w, http.StatusOK, map[string]any{
		"assigned": assigned,
		"document": ed.Document(),
	})
}

// =============================================================================
// History
// =============================================================================

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.handleHistoryStep(w, r, (*editor.Editor).Undo)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.handleHistoryStep(w, r, (*editor.Editor).Redo)
}

func (s *Server) handleHistoryStep(w http.ResponseWriter, r *http.Request, step func(*editor.Editor) bool) {
	ed, err := s.session(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stepped":  step(ed),
		"document": ed.Document(),
	})
}

// =============================================================================
// Export
// =============================================================================

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	ed, err := s.session(r.Context(), eventID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc := ed.Document()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", eventID+".xlsx"))

	var writeErr error
	if r.URL.Query().Get("format") == "document" {
		writeErr = excel.WriteDocument(doc, w)
	} else {
		writeErr = excel.WriteSummary(doc, w)
	}
	if writeErr != nil {
		// Headers are gone; all that's left is logging.
		s.log.Error("export failed", "event", eventID, "err", writeErr)
	}
}
