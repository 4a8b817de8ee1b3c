package card

// Field length bounds. Values longer than these would overflow any template's
// placement boxes, so they are rejected before rendering.
const (
	MaxNameLen    = 80
	MaxFieldLen   = 120
	MaxAddressLen = 200
)

// Data is one person's contact record. Only Name is mandatory; placements
// that reference an empty optional field are skipped at render time.
type Data struct {
	Name           string `json:"name"`
	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Website        string `json:"website"`
	Address        string `json:"address"`
	SocialPlatform string `json:"social_platform"`
	SocialHandle   string `json:"social_handle"`
	IncludeQR      bool   `json:"include_qr"`
	LogoPath       string `json:"logo_path"`
}

// Field returns the value for a template field key, or "" if unknown.
func (d Data) Field(key string) string {
	switch key {
	case "name":
		return d.Name
	case "job_title":
		return d.JobTitle
	case "company":
		return d.Company
	case "email":
		return d.Email
	case "phone":
		return d.Phone
	case "website":
		return d.Website
	case "address":
		return d.Address
	case "social_platform":
		return d.SocialPlatform
	case "social_handle":
		return d.SocialHandle
	}
	return ""
}

// FieldKeys lists the text field keys templates may reference, in display
// order.
var FieldKeys = []string{
	"name", "job_title", "company", "email", "phone",
	"website", "address", "social_platform", "social_handle",
}

// KnownField reports whether key is a valid template field reference.
func KnownField(key string) bool {
	for _, k := range FieldKeys {
		if k == key {
			return true
		}
	}
	return false
}
