package sync

import (
	"context"
	"fmt"
	"slices"

	"github.com/Qwerty-133/spotils/internal/spotify"
)

// chunkSize bounds how many tracks a single mutation call may carry.
const chunkSize = 100

// session owns the working copies for a single reconciliation pass. The
// playlist working copy is mutated chunk by chunk in lockstep with the
// confirmed remote calls, so a failure mid-pass leaves the two consistent
// up to the last confirmed chunk. Sessions are never reused.
type session struct {
	svc        Service
	playlistID string

	playlistTracks []string // working copy of the target playlist
	likedTracks    []string // desired order, read-only

	// snapshot id of the last mutation, cleared after every insert (see
	// chunkedInsert)
	snapshotID string
}

// apply performs the remote mutations for a single edit-script op.
func (s *session) apply(ctx context.Context, op EditOp) error {
	switch op.Tag {
	case OpReplace:
		return s.chunkedReplace(ctx, op.I1, op.I2, op.J1, op.J2)
	case OpDelete:
		return s.chunkedDelete(ctx, op.I1, op.I2)
	case OpInsert:
		return s.chunkedInsert(ctx, op.I1, op.J1, op.J2)
	default:
		return nil
	}
}

// chunkedInsert inserts likedTracks[lStart:lEnd] into the playlist at
// pStart, at most chunkSize tracks per call.
//
// The snapshot id returned by an insert is recorded and then discarded:
// the API's position semantics across an insert-then-delete pair on one
// snapshot are undefined, so a following delete must run unversioned.
// This leaves a race window against concurrent external edits; the next
// scheduled pass re-diffs from fresh state and self-corrects.
func (s *session) chunkedInsert(ctx context.Context, pStart, lStart, lEnd int) error {
	toInsert := s.likedTracks[lStart:lEnd]
	position := pStart

	for start := 0; start < len(toInsert); start += chunkSize {
		chunk := toInsert[start:min(start+chunkSize, len(toInsert))]

		snapshotID, err := s.svc.AddPlaylistTracks(ctx, s.playlistID, chunk, position)
		if err != nil {
			return fmt.Errorf("insert tracks at %d: %w", position, err)
		}
		s.snapshotID = snapshotID

		s.playlistTracks = slices.Insert(s.playlistTracks, position, chunk...)
		position += len(chunk)
	}
	s.snapshotID = ""

	return nil
}

// chunkedDelete removes playlistTracks[pStart:pEnd] from the playlist, at
// most chunkSize tracks per call. Positions sent to the API are current
// working-copy positions: each confirmed chunk is removed from the working
// copy before the next chunk's positions are computed.
func (s *session) chunkedDelete(ctx context.Context, pStart, pEnd int) error {
	remaining := pEnd - pStart

	for remaining > 0 {
		n := min(chunkSize, remaining)
		occurrences := make([]spotify.TrackOccurrence, n)
		for i := 0; i < n; i++ {
			occurrences[i] = spotify.TrackOccurrence{
				ID:       s.playlistTracks[pStart+i],
				Position: pStart + i,
			}
		}

		if _, err := s.svc.RemovePlaylistTracks(ctx, s.playlistID, occurrences, s.snapshotID); err != nil {
			return fmt.Errorf("remove tracks at %d: %w", pStart, err)
		}

		s.playlistTracks = slices.Delete(s.playlistTracks, pStart, pStart+n)
		remaining -= n
	}

	return nil
}

// chunkedReplace swaps playlistTracks[pStart:pEnd] for
// likedTracks[lStart:lEnd]. Deleting first keeps the insertion position
// stable.
func (s *session) chunkedReplace(ctx context.Context, pStart, pEnd, lStart, lEnd int) error {
	if err := s.chunkedDelete(ctx, pStart, pEnd); err != nil {
		return err
	}
	return s.chunkedInsert(ctx, pStart, lStart, lEnd)
}
