package onnx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/onnxtext/onnx"
)

func TestToTextGraph(t *testing.T) {
	value := func(name string) onnx.ValueInfoProto {
		return onnx.ValueInfoProto{
			Name: name,
			Type: &onnx.TypeProto{TensorType: &onnx.TensorTypeProto{
				ElemType: onnx.TensorProtoFloat,
				Shape:    &onnx.TensorShapeProto{Dims: []onnx.DimensionProto{onnx.DimParam("N"), onnx.DimValue(3)}},
			}},
		}
	}

	graph := &onnx.GraphProto{
		Name:    "main",
		Inputs:  onnx.ValueInfoList{value("X")},
		Outputs: onnx.ValueInfoList{value("Y")},
		Nodes: onnx.NodeList{
			{OpType: "Relu", Inputs: []string{"X"}, Outputs: []string{"H"}},
			{
				OpType:     "LeakyRelu",
				Inputs:     []string{"H"},
				Outputs:    []string{"Y"},
				Attributes: onnx.AttributeList{{Name: "alpha", Type: onnx.AttributeProtoFloat, F: 0.1}},
			},
		},
	}

	want := "main (float[N,3] X) => (float[N,3] Y) {\n" +
		"H = Relu(X)\n" +
		"Y = LeakyRelu<alpha = 0.1>(H)\n" +
		"}\n"
	assert.Equal(t, want, onnx.ToText(graph))

	var buf bytes.Buffer
	require.NoError(t, onnx.Fprint(&buf, graph))
	assert.Equal(t, want, buf.String())
}

func TestPrinterReuse(t *testing.T) {
	var buf bytes.Buffer
	p := onnx.NewPrinter(&buf)
	p.Print(&onnx.OperatorSetID{Domain: "ai.onnx.ml", Version: 3})
	p.Print(&onnx.TensorProto{DataType: onnx.TensorProtoInt64, Dims: []int64{2}, Int64Data: []int64{4, 5}})
	require.NoError(t, p.Err())
	assert.Equal(t, `"ai.onnx.ml" : 3int64[2] {4,5}`, buf.String())
}

func TestParseError(t *testing.T) {
	_, err := onnx.Parse([]byte{0x08})
	assert.Error(t, err)
}

func TestGetModelInfo(t *testing.T) {
	info := onnx.GetModelInfo(&onnx.ModelProto{
		IRVersion:   8,
		OpsetImport: []onnx.OperatorSetID{{Version: 17}},
		Graph:       &onnx.GraphProto{Name: "g", Nodes: onnx.NodeList{{OpType: "Relu"}}},
	})
	assert.Equal(t, int64(17), info.OpsetVersion)
	assert.Equal(t, 1, info.NodeCount)
}
