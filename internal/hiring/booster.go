package hiring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TreeNode is a node of a tree in XGBoost's JSON dump format. Leaves carry
// Leaf; split nodes carry Split ("f<index>"), SplitCondition and the ids of
// their Yes/No/Missing children.
type TreeNode struct {
	NodeID         int         `json:"nodeid"`
	Split          string      `json:"split,omitempty"`
	SplitCondition float64     `json:"split_condition,omitempty"`
	Yes            int         `json:"yes,omitempty"`
	No             int         `json:"no,omitempty"`
	Missing        int         `json:"missing,omitempty"`
	Leaf           *float64    `json:"leaf,omitempty"`
	Children       []*TreeNode `json:"children,omitempty"`
}

// Booster is a binary:logistic gradient-boosted tree ensemble.
type Booster struct {
	BaseScore float64     `json:"base_score"`
	Trees     []*TreeNode `json:"trees"`
}

type compiledNode struct {
	feature   int
	threshold float64
	yes       int
	no        int
	missing   int
	leaf      float64
	isLeaf    bool
}

type compiledTree []compiledNode

// compile flattens every tree into an array indexed by node id and checks
// that all feature indexes fit into a vector of width dim.
func (b *Booster) compile(dim int) ([]compiledTree, error) {
	if b.BaseScore <= 0 || b.BaseScore >= 1 {
		return nil, fmt.Errorf("base_score %v outside (0,1)", b.BaseScore)
	}

	trees := make([]compiledTree, 0, len(b.Trees))
	for i, root := range b.Trees {
		nodes := map[int]*TreeNode{}
		maxID := 0
		var walk func(n *TreeNode)
		walk = func(n *TreeNode) {
			if n == nil {
				return
			}
			nodes[n.NodeID] = n
			if n.NodeID > maxID {
				maxID = n.NodeID
			}
			for _, c := range n.Children {
				walk(c)
			}
		}
		walk(root)
		if len(nodes) == 0 {
			return nil, fmt.Errorf("tree %d is empty", i)
		}

		tree := make(compiledTree, maxID+1)
		for id, n := range nodes {
			if n.Leaf != nil {
				tree[id] = compiledNode{leaf: *n.Leaf, isLeaf: true}
				continue
			}
			feature, err := parseFeature(n.Split)
			if err != nil {
				return nil, fmt.Errorf("tree %d node %d: %w", i, id, err)
			}
			if feature >= dim {
				return nil, fmt.Errorf("tree %d node %d: feature f%d outside %d features", i, id, feature, dim)
			}
			for _, child := range []int{n.Yes, n.No, n.Missing} {
				if _, ok := nodes[child]; !ok {
					return nil, fmt.Errorf("tree %d node %d: unknown child %d", i, id, child)
				}
			}
			tree[id] = compiledNode{
				feature:   feature,
				threshold: n.SplitCondition,
				yes:       n.Yes,
				no:        n.No,
				missing:   n.Missing,
			}
		}
		if _, ok := nodes[0]; !ok {
			return nil, fmt.Errorf("tree %d has no root node 0", i)
		}
		trees = append(trees, tree)
	}

	return trees, nil
}

func parseFeature(split string) (int, error) {
	if !strings.HasPrefix(split, "f") {
		return 0, fmt.Errorf("split %q is not of the form f<index>", split)
	}
	idx, err := strconv.Atoi(split[1:])
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("split %q is not of the form f<index>", split)
	}
	return idx, nil
}

// margin walks one tree. NaN features follow the missing branch.
func (t compiledTree) margin(x []float64) float64 {
	id := 0
	for steps := 0; steps < len(t); steps++ {
		n := t[id]
		if n.isLeaf {
			return n.leaf
		}
		v := x[n.feature]
		switch {
		case math.IsNaN(v):
			id = n.missing
		case v < n.threshold:
			id = n.yes
		default:
			id = n.no
		}
	}
	return 0
}

func predictProba(trees []compiledTree, baseScore float64, x []float64) float64 {
	sum := math.Log(baseScore / (1 - baseScore))
	for _, t := range trees {
		sum += t.margin(x)
	}
	return 1 / (1 + math.Exp(-sum))
}
