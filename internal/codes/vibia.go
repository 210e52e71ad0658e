package codes

import (
	"fmt"
	"regexp"
	"strings"
)

var vibiaSurfaces = map[string]Name{
	"10": {EN: "Black", DE: "Schwarz"},
	"24": {EN: "Beige M1", DE: "Beige M1"},
}

var vibiaLEDs = map[string]Name{
	"0": {EN: "No LED", DE: "Ohne LED"},
	"1": {EN: "2700 K", DE: "2700 K"},
	"2": {EN: "3000 K", DE: "3000 K"},
	"3": {EN: "3500 K", DE: "3500 K"},
	"4": {EN: "4000 K", DE: "4000 K"},
	"5": {EN: "Plate", DE: "Plate"},
	"6": {EN: "Tunable White", DE: "Tunable White"},
	"9": {EN: "Tunable Red", DE: "Tunable Red"},
	"A": {EN: "Infinite Colour (TW + RGB)", DE: "Infinite Colour (TW + RGB)"},
	"F": {EN: "Dim-To-Warm", DE: "Dim-To-Warm"},
}

var vibiaControls = map[string]Name{
	"0": {EN: "On/Off", DE: "On/Off"},
	"1": {EN: "DALI-2", DE: "DALI-2"},
	"2": {EN: "0-10V", DE: "0-10V"},
	"3": {EN: "1-10V", DE: "1-10V"},
	"4": {EN: "TRIAC", DE: "TRIAC"},
	"5": {EN: "Phase", DE: "Phase"},
	"6": {EN: "Sensor", DE: "Sensor"},
	"7": {EN: "Lutron", DE: "Lutron"},
	"8": {EN: "Push 2", DE: "Push 2"},
	"A": {EN: "Push; 1-10V; DALI-2", DE: "Push; 1-10V; DALI-2"},
	"Y": {EN: "ProtoPixel", DE: "ProtoPixel"},
	"Z": {EN: "Casambi", DE: "Casambi"},
}

// ResolveVibiaSurface looks up a surface finish code. On a miss it returns a
// "Surface <code>" placeholder and false.
func ResolveVibiaSurface(code string) (Name, bool) {
	if n, ok := vibiaSurfaces[code]; ok {
		return n, true
	}
	return Name{EN: "Surface " + code, DE: "Oberfläche " + code}, false
}

func ResolveVibiaLED(code string) (Name, bool) {
	if n, ok := vibiaLEDs[code]; ok {
		return n, true
	}
	return Name{EN: "LED " + code, DE: "LED " + code}, false
}

func ResolveVibiaControl(code string) (Name, bool) {
	if n, ok := vibiaControls[code]; ok {
		return n, true
	}
	return Name{EN: "Control " + code, DE: "Steuerung " + code}, false
}

// VibiaSKU holds the parts of a Vibia article number. Full article numbers
// fill every field except VariantCode; short "MMMM/X" forms fill Model and
// VariantCode only.
type VibiaSKU struct {
	Model       string
	Surface     string
	LED         string
	Control     string
	Connection  string
	VariantCode string
}

func (s VibiaSKU) Full() bool { return s.Surface != "" }

var (
	vibiaFullSKU   = regexp.MustCompile(`^(\d{4})\s+(\d{2})\s*/\s*([0-9A-F])([0-9A-Z])\s*_\s*(\d{2})`)
	vibiaSimpleSKU = regexp.MustCompile(`^(\d{4})/(.+)`)
)

func ParseVibiaSKU(s string) (VibiaSKU, bool) {
	s = strings.TrimSpace(s)
	if m := vibiaFullSKU.FindStringSubmatch(s); m != nil {
		return VibiaSKU{Model: m[1], Surface: m[2], LED: m[3], Control: m[4], Connection: m[5]}, true
	}
	if m := vibiaSimpleSKU.FindStringSubmatch(s); m != nil {
		return VibiaSKU{Model: m[1], VariantCode: m[2]}, true
	}
	return VibiaSKU{}, false
}

// BuildVibiaSKU renders e.g. "1160 10 / 1A _ 18".
func BuildVibiaSKU(model, surface, led, control, connection string) string {
	return fmt.Sprintf("%s %s / %s%s _ %s", model, surface, led, control, connection)
}

func (s VibiaSKU) String() string {
	if !s.Full() {
		return s.Model + "/" + s.VariantCode
	}
	return BuildVibiaSKU(s.Model, s.Surface, s.LED, s.Control, s.Connection)
}
