package stream

// Kind tags the shape of a sequence source.
type Kind uint8

const (
	// KindInvalid is reported by Classify for values that are not sources.
	KindInvalid Kind = iota
	// KindSync sources never block on Next.
	KindSync
	// KindAsync sources may block on Next until a value is available.
	KindAsync
	// KindDeferred sources resolve a pending computation on their first pull.
	KindDeferred
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSync:
		return "sync"
	case KindAsync:
		return "async"
	case KindDeferred:
		return "deferred"
	default:
		return "invalid"
	}
}

// IsSync reports whether pulls of this kind never block.
func (k Kind) IsSync() bool { return k == KindSync }

// Join combines two kinds. Only sync joined with sync stays sync; anything
// touching an async or deferred kind becomes async.
func (k Kind) Join(other Kind) Kind {
	if k.blocks() || other.blocks() {
		return KindAsync
	}
	return KindSync
}

func (k Kind) blocks() bool { return k == KindAsync || k == KindDeferred }

// Join folds Kind.Join over kinds. An empty list is sync.
func Join(kinds ...Kind) Kind {
	out := KindSync
	for _, k := range kinds {
		out = out.Join(k)
	}
	return out
}
