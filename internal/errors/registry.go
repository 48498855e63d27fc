package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Image failed to load",
		Detail:   "The browser reported a load error, or the image completed with zero natural width.",
		DocURL:   "https://vango.dev/docs/vimg/errors/E001",
	},
	"E002": {
		Category: CategoryValidation,
		Message:  "Invalid image props",
		Detail:   "A picture needs at least one source and a fallback image.",
		DocURL:   "https://vango.dev/docs/vimg/errors/E002",
	},

	// ============================================
	// Placeholder Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryPlaceholder,
		Message:  "Placeholder source not found",
		Detail:   "The source image for the placeholder does not exist.",
		DocURL:   "https://vango.dev/docs/vimg/errors/E020",
	},
	"E021": {
		Category: CategoryPlaceholder,
		Message:  "Placeholder decode failed",
		Detail:   "The source image could not be decoded. Supported formats are JPEG, PNG, GIF and WebP.",
		DocURL:   "https://vango.dev/docs/vimg/errors/E021",
	},
	"E022": {
		Category: CategoryPlaceholder,
		Message:  "Placeholder encode failed",
		Detail:   "The blurred placeholder could not be encoded.",
		DocURL:   "https://vango.dev/docs/vimg/errors/E022",
	},
	"E023": {
		Category: CategoryPlaceholder,
		Message:  "Invalid placeholder key",
		Detail:   "Placeholder keys must be relative paths that stay inside the source root.",
		DocURL:   "https://vango.dev/docs/vimg/errors/E023",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The vimg.json file contains invalid configuration.",
		DocURL:   "https://vango.dev/docs/vimg/errors/E120",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No vimg.json file was found.",
		DocURL:   "https://vango.dev/docs/vimg/errors/E141",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
