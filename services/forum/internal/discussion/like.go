package discussion

// LikeState is the presence of one user's like on one comment.
type LikeState int

const (
	NotLiked LikeState = iota
	Liked
)

func likeStateOf(present bool) LikeState {
	if present {
		return Liked
	}
	return NotLiked
}

// Toggle is the only transition: every call flips the state.
func (s LikeState) Toggle() LikeState {
	if s == Liked {
		return NotLiked
	}
	return Liked
}

func (s LikeState) String() string {
	if s == Liked {
		return "liked"
	}
	return "not_liked"
}
