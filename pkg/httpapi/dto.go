package httpapi

import (
	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/core/roster"
	"github.com/jakechorley/escalas/pkg/core/services"
)

type placementDTO struct {
	AssignmentID string `json:"assignmentId,omitempty"`
	ServantID    string `json:"servantId,omitempty"`
	ServantName  string `json:"servantName"`
	Area         string `json:"area,omitempty"`
	Day          string `json:"day,omitempty"`
	Function     string `json:"function,omitempty"`
	Locked       bool   `json:"locked,omitempty"`
	Invalid      bool   `json:"invalid,omitempty"`
	Designation  string `json:"designation,omitempty"`
}

type slotDTO struct {
	DropZone   string         `json:"dropZone"`
	Function   string         `json:"function,omitempty"`
	Label      string         `json:"label"`
	Placements []placementDTO `json:"placements"`
}

type areaDayDTO struct {
	Area  string    `json:"area"`
	Label string    `json:"label"`
	Day   string    `json:"day"`
	Date  string    `json:"date"`
	Slots []slotDTO `json:"slots"`
}

type weekDTO struct {
	WeekStart string         `json:"weekStart"`
	Areas     []areaDayDTO   `json:"areas"`
	Unplaced  []placementDTO `json:"unplaced,omitempty"`
}

func toWeekDTO(view *roster.WeekView) weekDTO {
	dto := weekDTO{WeekStart: view.WeekStart, Areas: make([]areaDayDTO, 0, len(view.Areas))}
	for _, area := range view.Areas {
		areaDTO := areaDayDTO{
			Area:  area.Area,
			Label: area.Label,
			Day:   string(area.Day),
			Date:  area.Date,
			Slots: make([]slotDTO, 0, len(area.Slots)),
		}
		for _, slot := range area.Slots {
			s := slotDTO{
				DropZone:   slot.DropZone,
				Function:   slot.Function,
				Label:      slot.Label,
				Placements: make([]placementDTO, 0, len(slot.Placements)),
			}
			for _, p := range slot.Placements {
				s.Placements = append(s.Placements, toPlacementDTO(p, view.Public))
			}
			areaDTO.Slots = append(areaDTO.Slots, s)
		}
		dto.Areas = append(dto.Areas, areaDTO)
	}
	for _, p := range view.Unplaced {
		dto.Unplaced = append(dto.Unplaced, toPlacementDTO(p, view.Public))
	}
	return dto
}

// toPlacementDTO hides ids and lock state from the public roster
func toPlacementDTO(p roster.Placement, public bool) placementDTO {
	dto := placementDTO{
		ServantName: p.ServantName,
		Designation: string(p.Designation),
	}
	if public {
		return dto
	}
	dto.AssignmentID = p.AssignmentID
	dto.ServantID = p.ServantID
	dto.Area = p.Area
	dto.Day = string(p.Day)
	dto.Function = p.Function
	dto.Locked = p.Locked
	dto.Invalid = p.Invalid
	return dto
}

type assignmentDTO struct {
	ID        string `json:"id"`
	WeekStart string `json:"weekStart"`
	Area      string `json:"area"`
	Day       string `json:"day"`
	Function  string `json:"function,omitempty"`
	ServantID string `json:"servantId"`
	Locked    bool   `json:"locked"`
	Position  int    `json:"position"`
	CreatedBy string `json:"createdBy,omitempty"`
}

func toAssignmentDTO(a model.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:        a.ID,
		WeekStart: a.WeekStart,
		Area:      a.Area,
		Day:       string(a.Day),
		Function:  a.Function,
		ServantID: a.ServantID,
		Locked:    a.Locked,
		Position:  a.Position,
		CreatedBy: a.CreatedBy,
	}
}

type mutationDTO struct {
	Assignment *assignmentDTO  `json:"assignment,omitempty"`
	Week       []assignmentDTO `json:"week"`
	Changed    bool            `json:"changed"`
}

func toMutationDTO(result *services.MutationResult) mutationDTO {
	dto := mutationDTO{Changed: result.Changed, Week: make([]assignmentDTO, 0, len(result.Week))}
	if result.Assignment != nil {
		a := toAssignmentDTO(*result.Assignment)
		dto.Assignment = &a
	}
	for _, a := range result.Week {
		dto.Week = append(dto.Week, toAssignmentDTO(a))
	}
	return dto
}

type servantDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status"`
}

func toServantDTOs(servants []model.Servant) []servantDTO {
	result := make([]servantDTO, 0, len(servants))
	for _, s := range servants {
		result = append(result, toServantDTO(s))
	}
	return result
}

func toServantDTO(s model.Servant) servantDTO {
	return servantDTO{ID: s.ID, Name: s.Name, Phone: s.Phone, Email: s.Email, Status: string(s.Status)}
}

type createAssignmentRequest struct {
	WeekStart string `json:"weekStart"`
	Area      string `json:"area"`
	Day       string `json:"day"`
	Function  string `json:"function"`
	ServantID string `json:"servantId"`
	CreatedBy string `json:"createdBy"`
}

type moveRequest struct {
	DropZone string `json:"dropZone"`
}

type servantRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}
