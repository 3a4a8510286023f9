package tui

import (
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/cascade"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/scorer"
)

type scanDoneMsg struct {
	outcome cascade.Outcome
}

type scanErrMsg struct {
	err error
}

type scoreDoneMsg struct {
	assetID string
	score   scorer.Score
}
