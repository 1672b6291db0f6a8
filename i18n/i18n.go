// Package i18n holds the UI string catalogs (French default, English).
package i18n

import "strings"

const DefaultLang = "fr"

var catalogs = map[string]map[string]string{
	"fr": {
		"app.title":           "Gestion Fournisseur",
		"lines.title":         "Lignes",
		"lines.search":        "Recherche : référence, désignation, marque ou fournisseur",
		"lines.found":         "lignes trouvées",
		"lines.filter":        "filtre :",
		"lines.empty":         "Aucune ligne à afficher pour le moment.",
		"search.submit":       "OK",
		"line.title":          "Détail de la ligne",
		"line.designation":    "Désignation",
		"line.marque":         "Marque",
		"line.prix":           "Prix",
		"line.date":           "Date",
		"line.supplier":       "Fournisseur",
		"line.supplier_phone": "Téléphone du fournisseur",
		"line.supplier_email": "E-mail du fournisseur",
		"line.no_brand":       "Sans marque",
		"supplier.title":      "Fiche fournisseur",
		"supplier.code":       "Code fournisseur",
		"supplier.phone":      "Téléphone",
		"supplier.email":      "E-mail",
		"supplier.address":    "Adresse",
		"supplier.notes":      "Notes",
		"supplier.unknown":    "Fournisseur inconnu",
		"supplier.no_code":    "Non défini",
		"supplier.no_notes":   "Aucune note",
		"field.unset":         "Non renseigné",
		"nav.back_to_lines":   "Retour aux lignes",
		"lang.switch":         "English",
		"footer.text":         "Gestion Fournisseur, vue mobile (lecture seule)",
	},
	"en": {
		"app.title":           "Supplier Manager",
		"lines.title":         "Lines",
		"lines.search":        "Search: reference, designation, brand or supplier",
		"lines.found":         "lines found",
		"lines.filter":        "filter:",
		"lines.empty":         "No lines to show yet.",
		"search.submit":       "OK",
		"line.title":          "Line details",
		"line.designation":    "Designation",
		"line.marque":         "Brand",
		"line.prix":           "Price",
		"line.date":           "Date",
		"line.supplier":       "Supplier",
		"line.supplier_phone": "Supplier phone",
		"line.supplier_email": "Supplier email",
		"line.no_brand":       "No brand",
		"supplier.title":      "Supplier record",
		"supplier.code":       "Supplier code",
		"supplier.phone":      "Phone",
		"supplier.email":      "Email",
		"supplier.address":    "Address",
		"supplier.notes":      "Notes",
		"supplier.unknown":    "Unknown supplier",
		"supplier.no_code":    "Not set",
		"supplier.no_notes":   "No notes",
		"field.unset":         "Not provided",
		"nav.back_to_lines":   "Back to lines",
		"lang.switch":         "Français",
		"footer.text":         "Supplier Manager, mobile read-only view",
	},
}

// T returns the translation of code in lang. Unknown languages fall back to
// French, unknown codes to the code itself.
func T(lang, code string) string {
	if m, ok := catalogs[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalogs[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// DetectLanguage picks "en" when the Accept-Language header leads with
// English, "fr" otherwise.
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if strings.HasPrefix(h, "en") {
		return "en"
	}
	return DefaultLang
}
