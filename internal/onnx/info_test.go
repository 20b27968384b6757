package onnx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/onnxtext/internal/onnx/onnxtest"
)

func TestGetModelInfo(t *testing.T) {
	model, err := Parse(buildMatMulModel())
	require.NoError(t, err)

	info := GetModelInfo(model)
	assert.Equal(t, int64(7), info.IRVersion)
	assert.Equal(t, int64(13), info.OpsetVersion)
	assert.Equal(t, "matmul_graph", info.GraphName)
	assert.Equal(t, []string{"X"}, info.InputNames, "initializers are not model inputs")
	assert.Equal(t, []string{"Y"}, info.OutputNames)
	assert.Equal(t, 1, info.NodeCount)
	assert.Equal(t, 1, info.WeightCount)
	assert.Equal(t, []OpCount{{OpType: "MatMul", Count: 1}}, info.Operators)
}

func TestGetModelInfoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matmul.onnx")
	require.NoError(t, os.WriteFile(path, buildMatMulModel(), 0o600))

	info, err := GetModelInfoFile(path)
	require.NoError(t, err)
	assert.Equal(t, "matmul_graph", info.GraphName)
	assert.Equal(t, 1, info.WeightCount)

	_, err = GetModelInfoFile(filepath.Join(t.TempDir(), "missing.onnx"))
	require.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(t.TempDir(), "garbage.onnx")
	require.NoError(t, os.WriteFile(garbage, []byte{0x08}, 0o600))
	_, err = GetModelInfoFile(garbage)
	require.Error(t, err)
}

func TestGetModelInfoOperators(t *testing.T) {
	nodes := []onnxtest.Message{
		onnxtest.Node("Relu", []string{"a"}, []string{"b"}),
		onnxtest.Node("Add", []string{"b", "b"}, []string{"c"}),
		onnxtest.Node("Relu", []string{"c"}, []string{"d"}),
		onnxtest.Node("Abs", []string{"d"}, []string{"e"}),
	}
	fn := onnxtest.Function("custom", "F", nil, nil, nil, nil)
	data := onnxtest.Model(8, onnxtest.Graph("g", nil, nil, nodes),
		[]onnxtest.Message{onnxtest.Opset("custom", 1), onnxtest.Opset("ai.onnx", 17)}, fn)

	model, err := Parse(data)
	require.NoError(t, err)

	info := GetModelInfo(model)
	assert.Equal(t, int64(17), info.OpsetVersion)
	assert.Equal(t, []string{"F"}, info.Functions)
	assert.Equal(t, []OpCount{
		{OpType: "Relu", Count: 2},
		{OpType: "Abs", Count: 1},
		{OpType: "Add", Count: 1},
	}, info.Operators)
}

func TestGetModelInfoNoGraph(t *testing.T) {
	info := GetModelInfo(&ModelProto{IRVersion: 9, ProducerName: "test"})
	assert.Equal(t, int64(9), info.IRVersion)
	assert.Zero(t, info.OpsetVersion)
	assert.Zero(t, info.NodeCount)
	assert.Empty(t, info.GraphName)
}

func TestElemTypeName(t *testing.T) {
	assert.Equal(t, "float", ElemTypeName(TensorProtoFloat))
	assert.Equal(t, "bfloat16", ElemTypeName(TensorProtoBfloat16))
	assert.Empty(t, ElemTypeName(TensorProtoUndefined))
	assert.Empty(t, ElemTypeName(1000))
}
