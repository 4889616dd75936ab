// Package invoicexml construye la representación XML de una factura y su huella
// SHA-384 sobre la forma canónica (C14N), para verificar integridad del PDF emitido.
package invoicexml

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// Namespace del documento de factura.
const Namespace = "urn:cajaplus:factura:1"

// Builder implementa billing.InvoiceFingerprinter.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// BuildInvoiceXML devuelve el XML indentado y la huella hex del documento canónico.
func (b *Builder) BuildInvoiceXML(ctx context.Context, inv entity.Invoice) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Factura")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("id", inv.ID)
	root.CreateElement("Fecha").SetText(inv.Date.Format(entity.TimestampLayout))
	root.CreateElement("Cliente").SetText(inv.Client)
	root.CreateElement("VentaID").SetText(inv.SaleID)

	items := root.CreateElement("Items")
	for _, it := range inv.Items {
		e := items.CreateElement("Item")
		e.CreateAttr("producto_id", strconv.Itoa(it.ProductID))
		e.CreateElement("Nombre").SetText(it.Name)
		e.CreateElement("Cantidad").SetText(strconv.Itoa(it.Quantity))
		e.CreateElement("PrecioUnitario").SetText(it.UnitPrice.StringFixed(2))
		e.CreateElement("Subtotal").SetText(it.Subtotal().StringFixed(2))
	}
	root.CreateElement("Total").SetText(inv.Total.StringFixed(2))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("invoicexml: serializar: %w", err)
	}

	fp, err := Fingerprint(out)
	if err != nil {
		return nil, "", err
	}
	return out, fp, nil
}

// Fingerprint SHA-384 hex de la forma canónica del XML.
// Dos documentos que solo difieren en orden de atributos o comillas dan la misma huella.
func Fingerprint(data []byte) (string, error) {
	canon, err := canonicalize(data)
	if err != nil {
		return "", fmt.Errorf("invoicexml: canonicalizar: %w", err)
	}
	sum := sha512.Sum384(canon)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalize descarta la declaración XML y aplica C14N al elemento raíz.
func canonicalize(data []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("documento sin elemento raíz")
	}
	only := etree.NewDocument()
	only.SetRoot(root.Copy())
	raw, err := only.WriteToBytes()
	if err != nil {
		return nil, err
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
