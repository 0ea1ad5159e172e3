package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/watchroom/server/internal/repository/room"
	"github.com/watchroom/server/pkg/wsconn"
)

type JoinRoomParams struct {
	Conn     *wsconn.Conn
	ConnId   string
	Username string
	RoomId   string
}

type JoinRoomResponse struct {
	State       RoomState
	MemberNames []string
	Conns       []*wsconn.Conn
}

// JoinRoom registers the member in the target room, creating the room on
// first reference, and returns a snapshot for the initial client sync.
func (s *service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	count, err := s.roomRepo.GetMembersCount(ctx, params.RoomId)
	if err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to get members count: %w", err)
	}

	if count >= s.membersLimit {
		return JoinRoomResponse{}, ErrMembersLimitReached
	}

	if err := s.roomRepo.SetMember(ctx, &room.SetMemberParams{
		ConnId:   params.ConnId,
		Username: params.Username,
		RoomId:   params.RoomId,
	}); err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to set member: %w", err)
	}

	if err := s.connRepo.Add(params.Conn, params.ConnId); err != nil {
		s.rollbackJoin(ctx, params.RoomId, params.ConnId)
		return JoinRoomResponse{}, fmt.Errorf("failed to add conn: %w", err)
	}

	state, err := s.getRoomState(ctx, params.RoomId)
	if err != nil {
		s.rollbackJoin(ctx, params.RoomId, params.ConnId)
		return JoinRoomResponse{}, err
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		s.rollbackJoin(ctx, params.RoomId, params.ConnId)
		return JoinRoomResponse{}, err
	}

	return JoinRoomResponse{
		State:       state,
		MemberNames: state.Members,
		Conns:       conns,
	}, nil
}

// rollbackJoin undoes a partially registered member so a failed join never
// occupies a member slot or inflates vote quorums.
func (s *service) rollbackJoin(ctx context.Context, roomId, connId string) {
	if err := s.connRepo.RemoveByConnId(connId); err != nil {
		s.logger.DebugContext(ctx, "failed to remove conn on join rollback", "error", err)
	}

	if err := s.roomRepo.RemoveMember(ctx, &room.RemoveMemberParams{
		ConnId: connId,
		RoomId: roomId,
	}); err != nil && !errors.Is(err, room.ErrMemberNotFound) {
		s.logger.WarnContext(ctx, "failed to remove member on join rollback", "error", err)
	}
}

type DisconnectMemberParams struct {
	ConnId string
	RoomId string
}

type DisconnectMemberResponse struct {
	Username    string
	MemberNames []string
	Conns       []*wsconn.Conn
}

// DisconnectMember removes the member and prunes its skip vote and poll
// votes, so departed connections can never be counted. The skip-vote
// threshold is not re-evaluated here: a shrunken room resolves on the next
// vote.
func (s *service) DisconnectMember(ctx context.Context, params *DisconnectMemberParams) (DisconnectMemberResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	username, err := s.roomRepo.GetMemberUsername(ctx, params.RoomId, params.ConnId)
	if err != nil {
		if !errors.Is(err, room.ErrMemberNotFound) {
			return DisconnectMemberResponse{}, fmt.Errorf("failed to get member username: %w", err)
		}
	}

	if err := s.roomRepo.RemoveMember(ctx, &room.RemoveMemberParams{
		ConnId: params.ConnId,
		RoomId: params.RoomId,
	}); err != nil && !errors.Is(err, room.ErrMemberNotFound) {
		return DisconnectMemberResponse{}, fmt.Errorf("failed to remove member: %w", err)
	}

	if err := s.roomRepo.RemoveSkipVote(ctx, &room.RemoveSkipVoteParams{
		ConnId: params.ConnId,
		RoomId: params.RoomId,
	}); err != nil {
		return DisconnectMemberResponse{}, fmt.Errorf("failed to remove skip vote: %w", err)
	}

	if err := s.roomRepo.RemovePollVoter(ctx, &room.RemovePollVoterParams{
		ConnId: params.ConnId,
		RoomId: params.RoomId,
	}); err != nil {
		return DisconnectMemberResponse{}, fmt.Errorf("failed to remove poll voter: %w", err)
	}

	if err := s.connRepo.RemoveByConnId(params.ConnId); err != nil {
		s.logger.DebugContext(ctx, "failed to remove conn", "error", err)
	}

	memberNames, err := s.roomRepo.GetMemberNames(ctx, params.RoomId)
	if err != nil {
		return DisconnectMemberResponse{}, fmt.Errorf("failed to get member names: %w", err)
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return DisconnectMemberResponse{}, err
	}

	return DisconnectMemberResponse{
		Username:    username,
		MemberNames: memberNames,
		Conns:       conns,
	}, nil
}
