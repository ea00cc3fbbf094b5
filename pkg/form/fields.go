package form

// Field identifies one form input. Updates are dispatched through an
// exhaustive switch keyed on this enum rather than by reflected field name.
type Field int

const (
	FieldBirthYear Field = iota
	FieldBirthMonth
	FieldBirthDay
	FieldLastName
	FieldFirstName
	FieldLastNameKana
	FieldFirstNameKana
	FieldPostalCode
	FieldPrefecture
	FieldMunicipality
	FieldPhoneNumber
	FieldPreferredTiming

	// FieldBirthDate is an error key only: the three birth selects share
	// one validation message. It is not a writable field.
	FieldBirthDate
)

func (f Field) String() string {
	switch f {
	case FieldBirthYear:
		return "birthYear"
	case FieldBirthMonth:
		return "birthMonth"
	case FieldBirthDay:
		return "birthDay"
	case FieldLastName:
		return "lastName"
	case FieldFirstName:
		return "firstName"
	case FieldLastNameKana:
		return "lastNameKana"
	case FieldFirstNameKana:
		return "firstNameKana"
	case FieldPostalCode:
		return "postalCode"
	case FieldPrefecture:
		return "prefectureId"
	case FieldMunicipality:
		return "municipalityId"
	case FieldPhoneNumber:
		return "phoneNumber"
	case FieldPreferredTiming:
		return "preferredTiming"
	case FieldBirthDate:
		return "birthDate"
	}
	return "unknown"
}

// Data is the mutable form record owned by the machine for one session.
// Back-navigation preserves values; nothing here is ever cleared by a
// step change.
type Data struct {
	BirthYear  string
	BirthMonth string
	BirthDay   string

	LastName      string
	FirstName     string
	LastNameKana  string
	FirstNameKana string

	// Exactly one addressing mode is active per session: a 7-digit postal
	// code, or a prefecture/municipality pair in location-selection mode.
	PostalCode     string
	PrefectureID   string
	MunicipalityID string

	PhoneNumber     string
	PreferredTiming string
}

// Errors maps a field to its one visible message. Empty map means valid.
type Errors map[Field]string
