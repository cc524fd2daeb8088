package http

import (
	"regexp"
	"strings"

	"github.com/arcbank/transactions-service/internal/pkg/models"
)

// ReasonTechnical is reported for anything the switch did not classify
const ReasonTechnical = "MS03"

const technicalMessage = "Error técnico en Switch/Banco Destino"

// submitErrorCodes are searched in order in a failed submission
var submitErrorCodes = []string{"AC01", "AC04", "AC06", "AG01", "AM04", "CH03"}

// MapSubmitError extracts the canonical reason from a failed submission
func MapSubmitError(text string) (code, message string) {
	upper := strings.ToUpper(text)
	for _, c := range submitErrorCodes {
		if strings.Contains(upper, c) {
			return c, text
		}
	}
	switch {
	case strings.Contains(upper, "AM05"), strings.Contains(upper, "DUPL"):
		return "MD01", text
	case strings.Contains(upper, "RC01"):
		return "RC01", text
	}
	return ReasonTechnical, technicalMessage
}

var returnReasonAliases = map[string]string{
	"TECH":                "MS03",
	"ERROR_TECNICO":       "MS03",
	"MS03":                "MS03",
	"CUENTA_INVALIDA":     "AC03",
	"AC03":                "AC03",
	"SALDO_INSUFICIENTE":  "AM04",
	"AM04":                "AM04",
	"CUENTA_CERRADA":      "AC04",
	"AC04":                "AC04",
	"CUENTA_BLOQUEADA":    "AC06",
	"AC06":                "AC06",
	"OPERACION_PROHIBIDA": "AG01",
	"AG01":                "AG01",
	"DUPLICADO":           "AM05",
	"DUPL":                "AM05",
	"AM05":                "AM05",
	"MD01":                "AM05",
	"FRAUDE":              "FR01",
	"FRAD":                "FR01",
	"FR01":                "FR01",
}

var isoReasonCode = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// MapReturnReason turns a bank-side reason into the code the switch accepts
func MapReturnReason(reason string) string {
	key := strings.ToUpper(strings.TrimSpace(reason))
	if code, ok := returnReasonAliases[key]; ok {
		return code
	}
	if isoReasonCode.MatchString(key) {
		return key
	}
	return ReasonTechnical
}

// ReturnReasons is the catalog offered to operators
var ReturnReasons = []models.ReturnReason{
	{Code: "AC03", Description: "Cuenta Inválida"},
	{Code: "AM04", Description: "Fondos Insuficientes"},
	{Code: "AC04", Description: "Cuenta Cerrada"},
	{Code: "AC06", Description: "Cuenta Bloqueada"},
	{Code: "AG01", Description: "Transacción Prohibida"},
	{Code: "MD01", Description: "Transacción Duplicada"},
	{Code: "MS03", Description: "Error Técnico"},
}
