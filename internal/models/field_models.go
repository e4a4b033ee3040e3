package models

type FieldName string

const (
	FieldGender      FieldName = "Gender"
	FieldAgeRange    FieldName = "Age Range"
	FieldEmotions    FieldName = "Emotions"
	FieldAttributes  FieldName = "Attributes"
	FieldObjects     FieldName = "Objects Detected"
	FieldCelebrities FieldName = "Celebrities"
	FieldMatchStatus FieldName = "Match Status"
	FieldSimilarity  FieldName = "Similarity"
	FieldText        FieldName = "Detected Text"
)

// FieldOrder is the display order of every field a FieldSet can hold.
var FieldOrder = []FieldName{
	FieldGender,
	FieldAgeRange,
	FieldEmotions,
	FieldAttributes,
	FieldObjects,
	FieldCelebrities,
	FieldMatchStatus,
	FieldSimilarity,
	FieldText,
}

type Field struct {
	Name  FieldName
	Value string
}

// FieldSet maps field names to display strings. Empty values are never
// stored, and Fields always returns entries in FieldOrder.
type FieldSet struct {
	values map[FieldName]string
}

func (fs *FieldSet) Set(name FieldName, value string) {
	if value == "" || !isKnownField(name) {
		return
	}
	if fs.values == nil {
		fs.values = make(map[FieldName]string, len(FieldOrder))
	}
	fs.values[name] = value
}

func (fs FieldSet) Get(name FieldName) (string, bool) {
	v, ok := fs.values[name]
	return v, ok
}

func (fs FieldSet) Len() int {
	return len(fs.values)
}

func (fs FieldSet) Fields() []Field {
	fields := make([]Field, 0, len(fs.values))
	for _, name := range FieldOrder {
		if v, ok := fs.values[name]; ok {
			fields = append(fields, Field{Name: name, Value: v})
		}
	}
	return fields
}

func isKnownField(name FieldName) bool {
	for _, n := range FieldOrder {
		if n == name {
			return true
		}
	}
	return false
}
