package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSubmitError(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantCode string
		wantMsg  string
	}{
		{name: "invalid account", text: `{"error":"AC01 cuenta no existe"}`, wantCode: "AC01", wantMsg: `{"error":"AC01 cuenta no existe"}`},
		{name: "first match wins", text: "AM04 after AC06", wantCode: "AC06", wantMsg: "AM04 after AC06"},
		{name: "limit", text: "CH03 limit exceeded", wantCode: "CH03", wantMsg: "CH03 limit exceeded"},
		{name: "duplicate AM05", text: "AM05", wantCode: "MD01", wantMsg: "AM05"},
		{name: "duplicate text", text: "duplicated instruction", wantCode: "MD01", wantMsg: "duplicated instruction"},
		{name: "RC01", text: "RC01 bad bic", wantCode: "RC01", wantMsg: "RC01 bad bic"},
		{name: "unknown", text: "boom", wantCode: "MS03", wantMsg: "Error técnico en Switch/Banco Destino"},
		{name: "empty", text: "", wantCode: "MS03", wantMsg: "Error técnico en Switch/Banco Destino"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := MapSubmitError(tt.text)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestMapReturnReason(t *testing.T) {
	tests := map[string]string{
		"TECH":                "MS03",
		"error_tecnico":       "MS03",
		" CUENTA_INVALIDA ":   "AC03",
		"SALDO_INSUFICIENTE":  "AM04",
		"CUENTA_CERRADA":      "AC04",
		"CUENTA_BLOQUEADA":    "AC06",
		"OPERACION_PROHIBIDA": "AG01",
		"DUPLICADO":           "AM05",
		"MD01":                "AM05",
		"FRAUDE":              "FR01",
		"FRAD":                "FR01",
		"NARR":                "NARR",
		"ab12":                "AB12",
		"":                    "MS03",
		"cliente arrepentido": "MS03",
		"TOOLONG":             "MS03",
	}

	for input, want := range tests {
		assert.Equal(t, want, MapReturnReason(input), "input %q", input)
	}
}

func TestNormalizeBankID(t *testing.T) {
	assert.Equal(t, "BANTEC", NormalizeBankID("100050"))
	assert.Equal(t, "BANTEC", NormalizeBankID("200100"))
	assert.Equal(t, "BANTEC", NormalizeBankID("bantec"))
	assert.Equal(t, "NEXUS", NormalizeBankID("NEXUS"))
}
