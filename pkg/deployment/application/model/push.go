package model

import (
	"path"

	"github.com/go-git/go-git/v5/plumbing"
)

// PushContext describes the reference update that triggered the deployment.
type PushContext struct {
	// OldRevision is empty when the ref did not exist before the push.
	OldRevision string
	NewRevision string
	Ref         plumbing.ReferenceName
	// BaseRef is the last element of Ref, e.g. 3.0 for refs/heads/3.0.
	BaseRef string
}

func NewPushContext(oldRevision, newRevision, ref string) PushContext {
	return PushContext{
		OldRevision: oldRevision,
		NewRevision: newRevision,
		Ref:         plumbing.ReferenceName(ref),
		BaseRef:     path.Base(ref),
	}
}

func (push PushContext) IsBranch() bool {
	return push.Ref.IsBranch()
}

func (push PushContext) IsTag() bool {
	return push.Ref.IsTag()
}

// IsDeletion reports whether the push removes the ref.
func (push PushContext) IsDeletion() bool {
	return push.NewRevision == plumbing.ZeroHash.String()
}

func (push PushContext) RefType() string {
	switch {
	case push.IsBranch():
		return "branch"
	case push.IsTag():
		return "tag"
	default:
		return "ref"
	}
}
