package catalog

import (
	"slices"

	"github.com/jakechorley/escalas/pkg/core/model"
)

// Area keys
const (
	AreaMedia      = "media"
	AreaKidsSunday = "kids_sunday"
	AreaWorship    = "worship"
	AreaSound      = "sound"
	AreaSnackBar   = "snack_bar"
	AreaConnection = "connection"
)

// ResponsibleOrder describes how the responsible servant of a
// single-responsible area is picked from its ordered group
type ResponsibleOrder string

const (
	// ResponsibleNone marks areas without a responsible designation
	ResponsibleNone ResponsibleOrder = ""
	// ResponsibleByPosition takes the earliest placed servant
	ResponsibleByPosition ResponsibleOrder = "position"
	// ResponsibleByFunction takes the first servant in function order
	ResponsibleByFunction ResponsibleOrder = "function"
)

// Function is a sub-role within an area
type Function struct {
	Key   string
	Label string
}

// Area is a static catalog entry describing a service area
type Area struct {
	Key               string
	Label             string
	AppliesOnSaturday bool
	RequiresFunction  bool
	Functions         []Function // Authoritative display order, empty if RequiresFunction is false
	Responsible       ResponsibleOrder
}

// AppliesOn reports whether the area is staffed on the given day
func (a Area) AppliesOn(day model.Day) bool {
	if day == model.DaySaturday {
		return a.AppliesOnSaturday
	}
	return day == model.DaySunday
}

// FunctionIndex returns the position of the function in the area's list, or -1
func (a Area) FunctionIndex(function string) int {
	return slices.IndexFunc(a.Functions, func(f Function) bool { return f.Key == function })
}

// FunctionLabel returns the display label of a function, falling back to the key
func (a Area) FunctionLabel(function string) string {
	if i := a.FunctionIndex(function); i >= 0 {
		return a.Functions[i].Label
	}
	return function
}

func (a Area) HasSingleResponsible() bool {
	return a.Responsible != ResponsibleNone
}

var areaOrder = []string{
	AreaMedia,
	AreaKidsSunday,
	AreaWorship,
	AreaSound,
	AreaSnackBar,
	AreaConnection,
}

var areas = map[string]Area{
	AreaMedia: {
		Key:               AreaMedia,
		Label:             "Mídia",
		AppliesOnSaturday: true,
	},
	AreaKidsSunday: {
		Key:         AreaKidsSunday,
		Label:       "Kids",
		Responsible: ResponsibleByPosition,
	},
	AreaWorship: {
		Key:               AreaWorship,
		Label:             "Louvor",
		AppliesOnSaturday: true,
		RequiresFunction:  true,
		Functions: []Function{
			{Key: "ministro", Label: "Ministro"},
			{Key: "voice1", Label: "Voz 1"},
			{Key: "voice2", Label: "Voz 2"},
			{Key: "voice3", Label: "Voz 3"},
			{Key: "guitar", Label: "Violão/Guitarra"},
			{Key: "bass", Label: "Baixo"},
			{Key: "keys", Label: "Teclado"},
			{Key: "drums", Label: "Bateria"},
		},
	},
	AreaSound: {
		Key:               AreaSound,
		Label:             "Som",
		AppliesOnSaturday: true,
	},
	AreaSnackBar: {
		Key:               AreaSnackBar,
		Label:             "Cantina",
		AppliesOnSaturday: true,
	},
	AreaConnection: {
		Key:               AreaConnection,
		Label:             "Conexão",
		AppliesOnSaturday: true,
		RequiresFunction:  true,
		Functions: []Function{
			{Key: "coordinator", Label: "Coordenação"},
			{Key: "main_entrance", Label: "Porta principal"},
			{Key: "side_entrance", Label: "Porta lateral"},
			{Key: "welcome_desk", Label: "Recepção"},
			{Key: "visitors", Label: "Visitantes"},
			{Key: "parking", Label: "Estacionamento"},
			{Key: "aisles", Label: "Corredores"},
		},
		Responsible: ResponsibleByFunction,
	},
}

// Lookup returns the area for the given key
func Lookup(key string) (Area, bool) {
	area, ok := areas[key]
	if !ok {
		return Area{}, false
	}
	area.Functions = slices.Clone(area.Functions)
	return area, true
}

// Areas returns every area in display order
func Areas() []Area {
	result := make([]Area, 0, len(areaOrder))
	for _, key := range areaOrder {
		area, _ := Lookup(key)
		result = append(result, area)
	}
	return result
}

// AreasOn returns the areas staffed on the given day, in display order
func AreasOn(day model.Day) []Area {
	var result []Area
	for _, area := range Areas() {
		if area.AppliesOn(day) {
			result = append(result, area)
		}
	}
	return result
}
