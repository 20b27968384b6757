package onnx

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// floatPrecision is the number of significant digits used for FLOAT and
// DOUBLE literals (the %g default).
const floatPrecision = 6

// Printer writes the text form of ONNX IR to an io.Writer.
//
// The only state a Printer carries is its sink and the first error the sink
// returned. Once a write fails, later writes are skipped and Err reports the
// failure; output written up to that point is left as is. A Printer is not
// safe for concurrent use.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter returns a Printer writing to w. The caller owns w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Err returns the first error reported by the sink, if any.
func (p *Printer) Err() error {
	return p.err
}

// Fprint writes the text form of node to w.
func Fprint(w io.Writer, node Proto) error {
	p := NewPrinter(w)
	p.Print(node)
	return p.Err()
}

// ToText returns the text form of node.
//
// Example:
//
//	graph := &onnx.GraphProto{Name: "g", ...}
//	fmt.Print(onnx.ToText(graph))
func ToText(node Proto) string {
	var sb strings.Builder
	NewPrinter(&sb).Print(node)
	return sb.String()
}

// Print writes the text form of node. Kinds without a rule print nothing.
func (p *Printer) Print(node Proto) {
	switch n := node.(type) {
	case *DimensionProto:
		p.printDimension(n)
	case *TensorShapeProto:
		p.printShape(n)
	case *TensorTypeProto:
		p.printTensorType(n)
	case *TypeProto:
		p.printType(n)
	case *TensorProto:
		p.printTensor(n)
	case *ValueInfoProto:
		p.printValueInfo(n)
	case ValueInfoList:
		p.printValueInfoList(n)
	case *AttributeProto:
		p.printAttribute(n)
	case AttributeList:
		p.printAttributeList(n)
	case *NodeProto:
		p.printNode(n)
	case NodeList:
		p.printNodeList(n)
	case *GraphProto:
		p.printGraph(n)
	case *FunctionProto:
		p.printFunction(n)
	case *OperatorSetID:
		p.printOperatorSetID(n)
	default:
	}
}

// printList writes open, the elements separated by sep, then close. each is
// called with a pointer into elems so large messages are not copied.
func printList[T any](p *Printer, open, sep, closing string, elems []T, each func(*T)) {
	p.writeString(open)
	for i := range elems {
		if i > 0 {
			p.writeString(sep)
		}
		each(&elems[i])
	}
	p.writeString(closing)
}

// printData writes a tensor payload as " {v0,v1}" when it is non-empty.
func printData[T any](p *Printer, sep string, data []T, each func(*T)) {
	if len(data) == 0 {
		return
	}
	printList(p, " {", sep, "}", data, each)
}

func (p *Printer) printDimension(d *DimensionProto) {
	switch {
	case d == nil:
	case d.HasValue:
		p.writeInt(d.DimValue)
	case d.DimParam != "":
		p.writeString(d.DimParam)
	default:
		p.writeString("?")
	}
}

func (p *Printer) printShape(s *TensorShapeProto) {
	if s == nil {
		return
	}
	printList(p, "[", ",", "]", s.Dims, p.printDimension)
}

func (p *Printer) printTensorType(t *TensorTypeProto) {
	if t == nil {
		return
	}
	p.writeString(ElemTypeName(t.ElemType))
	if t.Shape == nil {
		p.writeString("[...]")
		return
	}
	if len(t.Shape.Dims) > 0 {
		p.printShape(t.Shape)
	}
}

// printType renders tensor types only; sequence, map and optional types
// print nothing.
func (p *Printer) printType(t *TypeProto) {
	if t == nil || t.TensorType == nil {
		return
	}
	p.printTensorType(t.TensorType)
}

// printTensor renders the payload list selected by the data type. Raw,
// external and reduced-precision payloads and the tensor name are not
// rendered.
func (p *Printer) printTensor(t *TensorProto) {
	if t == nil {
		return
	}
	p.writeString(ElemTypeName(t.DataType))
	printList(p, "[", ",", "]", t.Dims, p.int64Elem)

	switch t.DataType {
	case TensorProtoInt8, TensorProtoInt16, TensorProtoInt32,
		TensorProtoUint8, TensorProtoUint16, TensorProtoBool:
		printData(p, ",", t.Int32Data, p.int32Elem)
	case TensorProtoInt64:
		printData(p, ",", t.Int64Data, p.int64Elem)
	case TensorProtoUint32, TensorProtoUint64:
		printData(p, ",", t.Uint64Data, p.uint64Elem)
	case TensorProtoFloat:
		printData(p, ",", t.FloatData, p.float32Elem)
	case TensorProtoDouble:
		printData(p, ",", t.DoubleData, p.float64Elem)
	case TensorProtoString:
		printData(p, ", ", t.StringData, p.quotedElem)
	default:
	}
}

func (p *Printer) printValueInfo(v *ValueInfoProto) {
	if v == nil {
		return
	}
	p.printType(v.Type)
	p.writeString(" ")
	p.writeString(v.Name)
}

func (p *Printer) printValueInfoList(l ValueInfoList) {
	printList(p, "(", ", ", ")", l, p.printValueInfo)
}

func (p *Printer) printAttribute(a *AttributeProto) {
	if a == nil {
		return
	}
	p.writeString(a.Name)
	p.writeString(" = ")
	switch a.Type {
	case AttributeProtoInt:
		p.writeInt(a.I)
	case AttributeProtoInts:
		printList(p, "[", ", ", "]", a.Ints, p.int64Elem)
	case AttributeProtoFloat:
		p.float32Elem(&a.F)
	case AttributeProtoFloats:
		printList(p, "[", ", ", "]", a.Floats, p.float32Elem)
	case AttributeProtoString:
		p.quotedElem(&a.S)
	case AttributeProtoStrings:
		printList(p, "[", ", ", "]", a.Strings, p.quotedElem)
	case AttributeProtoGraph:
		p.printGraph(a.G)
	default:
	}
}

func (p *Printer) printAttributeList(l AttributeList) {
	printList(p, "<", ", ", ">", l, p.printAttribute)
}

func (p *Printer) printNode(n *NodeProto) {
	if n == nil {
		return
	}
	printList(p, "", ", ", "", n.Outputs, p.stringElem)
	p.writeString(" = ")
	p.writeString(n.OpType)
	if len(n.Attributes) > 0 {
		p.printAttributeList(n.Attributes)
	}
	printList(p, "(", ", ", ")", n.Inputs, p.stringElem)
}

func (p *Printer) printNodeList(l NodeList) {
	printList(p, "{\n", "\n", "\n}\n", l, p.printNode)
}

func (p *Printer) printGraph(g *GraphProto) {
	if g == nil {
		return
	}
	p.writeString(g.Name)
	p.writeString(" ")
	p.printValueInfoList(g.Inputs)
	p.writeString(" => ")
	p.printValueInfoList(g.Outputs)
	p.writeString(" ")
	p.printNodeList(g.Nodes)
}

func (p *Printer) printOperatorSetID(o *OperatorSetID) {
	if o == nil {
		return
	}
	p.writeString(`"`)
	p.writeString(o.Domain)
	p.writeString(`" : `)
	p.writeInt(o.Version)
}

func (p *Printer) printFunction(f *FunctionProto) {
	if f == nil {
		return
	}
	p.writeString("<\n")
	p.writeString(`  domain: "`)
	p.writeString(f.Domain)
	p.writeString("\",\n")
	p.writeString("  opset_import: ")
	printList(p, "[", ",", "]", f.OpsetImport, p.printOperatorSetID)
	p.writeString("\n>\n")

	p.writeString(f.Name)
	p.writeString(" ")
	if len(f.Attributes) > 0 {
		printList(p, "<", ",", ">", f.Attributes, p.stringElem)
	}
	printList(p, "(", ", ", ")", f.Inputs, p.stringElem)
	p.writeString(" => ")
	printList(p, "(", ", ", ")", f.Outputs, p.stringElem)
	p.writeString("\n")
	p.printNodeList(f.Nodes)
}

// Literal writers. All of them are no-ops once the sink has failed.

func (p *Printer) writeString(s string) {
	if p.err != nil || s == "" {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *Printer) writeBytes(b []byte) {
	if p.err != nil || len(b) == 0 {
		return
	}
	_, p.err = p.w.Write(b)
}

func (p *Printer) writeInt(v int64) {
	p.writeString(strconv.FormatInt(v, 10))
}

func (p *Printer) stringElem(s *string) { p.writeString(*s) }
func (p *Printer) int32Elem(v *int32)   { p.writeInt(int64(*v)) }
func (p *Printer) int64Elem(v *int64)   { p.writeInt(*v) }

func (p *Printer) uint64Elem(v *uint64) {
	p.writeString(strconv.FormatUint(*v, 10))
}

func (p *Printer) float32Elem(v *float32) { p.writeFloat(float64(*v), 32) }
func (p *Printer) float64Elem(v *float64) { p.writeFloat(*v, 64) }

// writeFloat writes v in %g form. NaN and infinities are spelled nan, inf
// and -inf.
func (p *Printer) writeFloat(v float64, bitSize int) {
	switch {
	case math.IsNaN(v):
		p.writeString("nan")
	case math.IsInf(v, 1):
		p.writeString("inf")
	case math.IsInf(v, -1):
		p.writeString("-inf")
	default:
		p.writeString(strconv.FormatFloat(v, 'g', floatPrecision, bitSize))
	}
}

// quotedElem writes b between double quotes, verbatim.
func (p *Printer) quotedElem(b *[]byte) {
	p.writeString(`"`)
	p.writeBytes(*b)
	p.writeString(`"`)
}

// String returns the text form of the graph.
func (g *GraphProto) String() string { return ToText(g) }

// String returns the text form of the function.
func (f *FunctionProto) String() string { return ToText(f) }

// String returns the text form of the node.
func (n *NodeProto) String() string { return ToText(n) }
