// Package objecttype reconciles the two vocabularies used for qualification
// object categories: localized labels entered by users and canonical ASCII
// keys used in protocol records, file names and URLs.
package objecttype

import "strings"

// Canonical keys. The set is closed; anything outside it goes through the
// sanitize fallback and stays functional.
const (
	KeyRoom         = "room"
	KeyVehicle      = "vehicle"
	KeyRefrigerator = "refrigerator"
	KeyFreezer      = "freezer"
	KeyColdChamber  = "cold_chamber"
)

var labelToKey = map[string]string{
	"помещение":           KeyRoom,
	"автомобиль":          KeyVehicle,
	"холодильник":         KeyRefrigerator,
	"морозильник":         KeyFreezer,
	"холодильная_камера":  KeyColdChamber,
}

var keyToLabel = map[string]string{
	KeyRoom:         "помещение",
	KeyVehicle:      "автомобиль",
	KeyRefrigerator: "холодильник",
	KeyFreezer:      "морозильник",
	KeyColdChamber:  "холодильная_камера",
}

var displayNames = map[string]string{
	"помещение":          "Помещение",
	"автомобиль":         "Автомобиль",
	"холодильник":        "Холодильник",
	"морозильник":        "Морозильник",
	"холодильная_камера": "Холодильная камера",
}

// CanonicalKeys returns the closed key set in a stable order.
func CanonicalKeys() []string {
	return []string{KeyRoom, KeyVehicle, KeyRefrigerator, KeyFreezer, KeyColdChamber}
}

// ToCanonical maps a localized label to its canonical key. Labels that are
// already canonical keys map to themselves. Unrecognized input degrades to a
// sanitized ASCII key and never fails.
func ToCanonical(label string) string {
	if key, ok := labelToKey[label]; ok {
		return key
	}
	if _, ok := keyToLabel[label]; ok {
		return label
	}
	return Sanitize(label)
}

// Known reports whether labelOrKey belongs to the closed vocabulary, either
// as a localized label or as a canonical key. Sanitized fallback keys are not
// known: they collapse distinct inputs and must not be compared as canonical.
func Known(labelOrKey string) bool {
	if _, ok := labelToKey[labelOrKey]; ok {
		return true
	}
	_, ok := keyToLabel[labelOrKey]
	return ok
}

// ToLabel maps a canonical key back to its localized label, echoing the key
// unchanged when it is not part of the closed set.
func ToLabel(key string) string {
	if label, ok := keyToLabel[key]; ok {
		return label
	}
	return key
}

// DisplayName returns the human-facing name for a label or key.
func DisplayName(labelOrKey string) string {
	label := ToLabel(ToCanonical(labelOrKey))
	if name, ok := displayNames[label]; ok {
		return name
	}
	return labelOrKey
}

// Sanitize lowercases the input and collapses every run of non-alphanumeric
// bytes into a single underscore, yielding a filesystem/URL-safe key.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// ProtocolFileName builds the artifact name for an uploaded qualification
// protocol, e.g. "qualification_protocol_room_plan.pdf".
func ProtocolFileName(objectType, baseName string) string {
	return "qualification_protocol_" + ToCanonical(objectType) + "_" + baseName
}

// ObjectTypeFromFileName extracts the localized object type back out of a
// protocol artifact name, or "" when the name does not carry one.
func ObjectTypeFromFileName(fileName string) string {
	const prefix = "qualification_protocol_"
	if !strings.HasPrefix(fileName, prefix) {
		return ""
	}
	rest := fileName[len(prefix):]
	// Known keys first: cold_chamber itself contains an underscore.
	for _, key := range CanonicalKeys() {
		if strings.HasPrefix(rest, key+"_") {
			return ToLabel(key)
		}
	}
	idx := strings.Index(rest, "_")
	if idx <= 0 {
		return ""
	}
	return ToLabel(rest[:idx])
}
