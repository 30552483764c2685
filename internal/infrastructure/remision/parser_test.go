package remision_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/infrastructure/remision"
)

func TestParse_DocumentoCompleto(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
	<Remision numero="R-001" proveedor="sup-1">
	  <Lineas>
	    <Linea codigo="MED-001" nombre="Amoxicilina 500mg"
	           cantidad="480.5" unidad="kg" lote="L-01" vencimiento="2028-01-15"/>
	    <Linea nombre="Ibuprofeno 400mg" cantidad="100" unidad="unidad"/>
	  </Lineas>
	</Remision>`

	lines, err := remision.NewParser().Parse(strings.NewReader(xml))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "MED-001", lines[0].ProductCode)
	assert.True(t, lines[0].Quantity.Equal(decimal.NewFromFloat(480.5)))
	assert.Equal(t, "L-01", lines[0].LotNumber)
	require.NotNil(t, lines[0].ExpiryDate)
	assert.Equal(t, time.Date(2028, 1, 15, 0, 0, 0, 0, time.UTC), *lines[0].ExpiryDate)

	assert.Empty(t, lines[1].ProductCode, "una línea puede venir solo con nombre")
	assert.Nil(t, lines[1].ExpiryDate)
}

func TestParse_SinLineas(t *testing.T) {
	lines, err := remision.NewParser().Parse(strings.NewReader(`<Remision numero="R-002"/>`))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestParse_Invalidos(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"raíz equivocada", `<Factura/>`},
		{"XML roto", `<Remision><Lineas>`},
		{"cantidad ilegible", `<Remision><Lineas><Linea codigo="X" cantidad="mucho"/></Lineas></Remision>`},
		{"cantidad negativa", `<Remision><Lineas><Linea codigo="X" cantidad="-3"/></Lineas></Remision>`},
		{"sin código ni nombre", `<Remision><Lineas><Linea cantidad="3"/></Lineas></Remision>`},
		{"vencimiento ilegible", `<Remision><Lineas><Linea codigo="X" cantidad="3" vencimiento="pronto"/></Lineas></Remision>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := remision.NewParser().Parse(strings.NewReader(tt.xml))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
