package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/watchroom/server/internal/repository/room"
	"github.com/watchroom/server/pkg/wsconn"
)

func (s *service) getConnsByRoomId(ctx context.Context, roomId string) ([]*wsconn.Conn, error) {
	connIds, err := s.roomRepo.GetMemberIds(ctx, roomId)
	if err != nil {
		return nil, fmt.Errorf("failed to get member ids: %w", err)
	}

	conns := make([]*wsconn.Conn, 0, len(connIds))
	for _, connId := range connIds {
		conn, err := s.connRepo.GetConn(connId)
		if err != nil {
			// member may be mid-disconnect, delivery is best-effort
			continue
		}

		conns = append(conns, conn)
	}

	return conns, nil
}

func (s *service) getConnsExceptSender(ctx context.Context, roomId, senderId string) ([]*wsconn.Conn, error) {
	connIds, err := s.roomRepo.GetMemberIds(ctx, roomId)
	if err != nil {
		return nil, fmt.Errorf("failed to get member ids: %w", err)
	}

	conns := make([]*wsconn.Conn, 0, len(connIds))
	for _, connId := range connIds {
		if connId == senderId {
			continue
		}

		conn, err := s.connRepo.GetConn(connId)
		if err != nil {
			continue
		}

		conns = append(conns, conn)
	}

	return conns, nil
}

func (s *service) getPlaylist(ctx context.Context, roomId string) ([]Video, error) {
	videos, err := s.roomRepo.GetVideos(ctx, roomId)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}

	playlist := make([]Video, 0, len(videos))
	for _, video := range videos {
		playlist = append(playlist, Video{
			VideoId: video.VideoId,
			Title:   video.Title,
			AddedBy: video.AddedBy,
		})
	}

	return playlist, nil
}

func (s *service) getPolls(ctx context.Context, roomId string) ([]Poll, error) {
	pollIds, err := s.roomRepo.GetPollIds(ctx, roomId)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll ids: %w", err)
	}

	polls := make([]Poll, 0, len(pollIds))
	for _, pollId := range pollIds {
		poll, err := s.roomRepo.GetPoll(ctx, &room.GetPollParams{
			PollId: pollId,
			RoomId: roomId,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get poll: %w", err)
		}

		polls = append(polls, s.toPoll(pollId, poll))
	}

	return polls, nil
}

func (s *service) toPoll(pollId string, poll room.Poll) Poll {
	options := make([]PollOption, 0, len(poll.Options))
	for _, option := range poll.Options {
		options = append(options, PollOption{Text: option.Text, Votes: option.Votes})
	}

	return Poll{
		Id:       pollId,
		Question: poll.Question,
		Options:  options,
	}
}

func (s *service) getRoomState(ctx context.Context, roomId string) (RoomState, error) {
	playlist, err := s.getPlaylist(ctx, roomId)
	if err != nil {
		return RoomState{}, err
	}

	var player *Player
	repoPlayer, err := s.roomRepo.GetPlayer(ctx, roomId)
	if err != nil {
		if !errors.Is(err, room.ErrPlayerNotFound) {
			return RoomState{}, fmt.Errorf("failed to get player: %w", err)
		}
	} else {
		player = &Player{
			VideoId:     repoPlayer.VideoId,
			CurrentTime: repoPlayer.CurrentTime,
			IsPaused:    repoPlayer.IsPaused,
		}
	}

	members, err := s.roomRepo.GetMemberNames(ctx, roomId)
	if err != nil {
		return RoomState{}, fmt.Errorf("failed to get member names: %w", err)
	}

	polls, err := s.getPolls(ctx, roomId)
	if err != nil {
		return RoomState{}, err
	}

	return RoomState{
		Playlist: playlist,
		Player:   player,
		Members:  members,
		Polls:    polls,
	}, nil
}

// GetRoomState returns a fresh snapshot for resync requests.
func (s *service) GetRoomState(ctx context.Context, roomId string) (RoomState, error) {
	unlock := s.lockRoom(roomId)
	defer unlock()

	return s.getRoomState(ctx, roomId)
}
