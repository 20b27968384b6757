package onnx

import "sort"

// ModelInfo contains basic information about an ONNX model.
type ModelInfo struct {
	IRVersion       int64     `yaml:"ir_version"`
	OpsetVersion    int64     `yaml:"opset_version"`
	ProducerName    string    `yaml:"producer_name,omitempty"`
	ProducerVersion string    `yaml:"producer_version,omitempty"`
	GraphName       string    `yaml:"graph_name,omitempty"`
	InputNames      []string  `yaml:"inputs"`
	OutputNames     []string  `yaml:"outputs"`
	NodeCount       int       `yaml:"nodes"`
	WeightCount     int       `yaml:"initializers"`
	Functions       []string  `yaml:"functions,omitempty"`
	Operators       []OpCount `yaml:"operators,omitempty"`
}

// OpCount is the number of nodes using one operator in the main graph.
type OpCount struct {
	OpType string `yaml:"op"`
	Count  int    `yaml:"count"`
}

// GetModelInfoFile parses an ONNX file and summarizes it.
func GetModelInfoFile(path string) (*ModelInfo, error) {
	proto, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return GetModelInfo(proto), nil
}

// GetModelInfo summarizes a parsed model.
func GetModelInfo(proto *ModelProto) *ModelInfo {
	info := &ModelInfo{
		IRVersion:       proto.IRVersion,
		OpsetVersion:    DefaultOpsetVersion(proto.OpsetImport),
		ProducerName:    proto.ProducerName,
		ProducerVersion: proto.ProducerVersion,
	}

	for i := range proto.Functions {
		info.Functions = append(info.Functions, proto.Functions[i].Name)
	}

	graph := proto.Graph
	if graph == nil {
		return info
	}
	info.GraphName = graph.Name

	// Inputs are graph inputs minus initializers
	initNames := make(map[string]bool)
	for i := range graph.Initializers {
		initNames[graph.Initializers[i].Name] = true
	}
	for i := range graph.Inputs {
		if !initNames[graph.Inputs[i].Name] {
			info.InputNames = append(info.InputNames, graph.Inputs[i].Name)
		}
	}

	for i := range graph.Outputs {
		info.OutputNames = append(info.OutputNames, graph.Outputs[i].Name)
	}

	info.NodeCount = len(graph.Nodes)
	info.WeightCount = len(graph.Initializers)
	info.Operators = countOperators(graph.Nodes)

	return info
}

// DefaultOpsetVersion returns the version imported for the default ONNX
// domain, or 0 if there is none.
func DefaultOpsetVersion(opsets []OperatorSetID) int64 {
	for _, opset := range opsets {
		if opset.Domain == "" || opset.Domain == "ai.onnx" {
			return opset.Version
		}
	}
	return 0
}

// countOperators returns per-operator node counts, most used first and ties
// by name.
func countOperators(nodes NodeList) []OpCount {
	counts := make(map[string]int)
	for i := range nodes {
		counts[nodes[i].OpType]++
	}

	result := make([]OpCount, 0, len(counts))
	for op, n := range counts {
		result = append(result, OpCount{OpType: op, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].OpType < result[j].OpType
	})
	return result
}
