// Package remision parsea remisiones electrónicas XML de proveedores con
// etree, el mismo parser que usamos para los documentos de facturación.
package remision

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/application/reception"
	"github.com/jhoicas/Recepcion-api/internal/domain"
)

// Formato de la remisión:
//
//	<Remision numero="R-001" proveedor="...">
//	  <Lineas>
//	    <Linea codigo="MED-001" nombre="Amoxicilina 500mg"
//	           cantidad="480" unidad="kg" lote="L-01" vencimiento="2028-01-15"/>
//	  </Lineas>
//	</Remision>

// Parser lee remisiones XML y produce renglones listos para el importador.
type Parser struct{}

func NewParser() *Parser { return &Parser{} }

// Parse lee el documento completo y devuelve sus renglones. Un documento sin
// raíz <Remision> o con cantidades ilegibles es ErrInvalidInput.
func (p *Parser) Parse(r io.Reader) ([]reception.RemisionLine, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: XML ilegible: %v", domain.ErrInvalidInput, err)
	}

	root := doc.SelectElement("Remision")
	if root == nil {
		return nil, fmt.Errorf("%w: falta el elemento raíz Remision", domain.ErrInvalidInput)
	}

	var lines []reception.RemisionLine
	lineas := root.SelectElement("Lineas")
	if lineas == nil {
		return lines, nil
	}
	for i, el := range lineas.SelectElements("Linea") {
		line, err := parseLinea(el)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func parseLinea(el *etree.Element) (reception.RemisionLine, error) {
	line := reception.RemisionLine{
		ProductCode: strings.TrimSpace(el.SelectAttrValue("codigo", "")),
		ProductName: strings.TrimSpace(el.SelectAttrValue("nombre", "")),
		Unit:        strings.TrimSpace(el.SelectAttrValue("unidad", "")),
		LotNumber:   strings.TrimSpace(el.SelectAttrValue("lote", "")),
	}
	if line.ProductCode == "" && line.ProductName == "" {
		return line, fmt.Errorf("%w: la línea no trae código ni nombre", domain.ErrInvalidInput)
	}

	raw := strings.TrimSpace(el.SelectAttrValue("cantidad", ""))
	qty, err := decimal.NewFromString(raw)
	if err != nil {
		return line, fmt.Errorf("%w: cantidad %q ilegible", domain.ErrInvalidInput, raw)
	}
	if qty.IsNegative() {
		return line, fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	line.Quantity = qty

	if v := strings.TrimSpace(el.SelectAttrValue("vencimiento", "")); v != "" {
		exp, err := time.Parse("2006-01-02", v)
		if err != nil {
			return line, fmt.Errorf("%w: vencimiento %q ilegible", domain.ErrInvalidInput, v)
		}
		line.ExpiryDate = &exp
	}
	return line, nil
}
