package redis

import (
	"context"

	"github.com/watchroom/server/internal/repository/room"
)

func (r repo) getVideoKey(roomId, entryId string) string {
	return "room:" + roomId + ":video:" + entryId
}

func (r repo) getQueueKey(roomId string) string {
	return "room:" + roomId + ":queue"
}

func (r repo) AddVideo(ctx context.Context, params *room.AddVideoParams) error {
	pipe := r.rc.TxPipeline()

	videoKey := r.getVideoKey(params.RoomId, params.EntryId)
	pipe.HSet(ctx, videoKey,
		"entry_id", params.EntryId,
		"video_id", params.VideoId,
		"title", params.Title,
		"added_by", params.AddedBy,
	)
	pipe.Expire(ctx, videoKey, r.expireDuration)

	queueKey := r.getQueueKey(params.RoomId)
	r.addWithIncrement(ctx, pipe, queueKey, params.EntryId)
	pipe.Expire(ctx, queueKey, r.expireDuration)

	return r.executePipe(ctx, pipe)
}

func (r repo) getVideo(ctx context.Context, roomId, entryId string) (room.Video, error) {
	var video room.Video
	if err := r.rc.HGetAll(ctx, r.getVideoKey(roomId, entryId)).Scan(&video); err != nil {
		return room.Video{}, err
	}

	if video.EntryId == "" {
		return room.Video{}, room.ErrVideoNotFound
	}

	return video, nil
}

func (r repo) removeVideo(ctx context.Context, roomId, entryId string) error {
	pipe := r.rc.TxPipeline()
	pipe.ZRem(ctx, r.getQueueKey(roomId), entryId)
	pipe.Del(ctx, r.getVideoKey(roomId, entryId))

	return r.executePipe(ctx, pipe)
}

func (r repo) RemoveVideoAt(ctx context.Context, params *room.RemoveVideoParams) error {
	if params.Index < 0 {
		return room.ErrVideoNotFound
	}

	entryIds, err := r.rc.ZRange(ctx, r.getQueueKey(params.RoomId), int64(params.Index), int64(params.Index)).Result()
	if err != nil {
		return err
	}

	if len(entryIds) == 0 {
		return room.ErrVideoNotFound
	}

	return r.removeVideo(ctx, params.RoomId, entryIds[0])
}

func (r repo) PopFirstVideo(ctx context.Context, roomId string) (room.Video, error) {
	entryIds, err := r.rc.ZRange(ctx, r.getQueueKey(roomId), 0, 0).Result()
	if err != nil {
		return room.Video{}, err
	}

	if len(entryIds) == 0 {
		return room.Video{}, room.ErrQueueEmpty
	}

	video, err := r.getVideo(ctx, roomId, entryIds[0])
	if err != nil {
		return room.Video{}, err
	}

	if err := r.removeVideo(ctx, roomId, entryIds[0]); err != nil {
		return room.Video{}, err
	}

	return video, nil
}

func (r repo) GetVideos(ctx context.Context, roomId string) ([]room.Video, error) {
	entryIds, err := r.rc.ZRange(ctx, r.getQueueKey(roomId), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	videos := make([]room.Video, 0, len(entryIds))
	for _, entryId := range entryIds {
		video, err := r.getVideo(ctx, roomId, entryId)
		if err != nil {
			return nil, err
		}

		videos = append(videos, video)
	}

	return videos, nil
}

func (r repo) GetVideosLength(ctx context.Context, roomId string) (int, error) {
	length, err := r.rc.ZCard(ctx, r.getQueueKey(roomId)).Result()
	if err != nil {
		return 0, err
	}

	return int(length), nil
}
