package livekit

import (
	"fmt"

	lksdk "github.com/livekit/server-sdk-go/v2"
)

type sdkRoom struct {
	room *lksdk.Room
}

func (r sdkRoom) PublishData(payload []byte, topic string) error {
	return r.room.LocalParticipant.PublishDataPacket(
		lksdk.UserData(payload),
		lksdk.WithDataPublishTopic(topic),
		lksdk.WithDataPublishReliable(true),
	)
}

func (r sdkRoom) Disconnect() {
	r.room.Disconnect()
}

func dialRoom(url, token string, h roomHandler) (roomClient, error) {
	callback := &lksdk.RoomCallback{
		OnDisconnectedWithReason: func(reason lksdk.DisconnectionReason) {
			h.handleDisconnected(fmt.Sprint(reason))
		},
		OnReconnecting: h.handleReconnecting,
		OnReconnected:  h.handleReconnected,
		ParticipantCallback: lksdk.ParticipantCallback{
			OnDataPacket: func(data lksdk.DataPacket, params lksdk.DataReceiveParams) {
				packet, ok := data.(*lksdk.UserDataPacket)
				if !ok {
					return
				}
				h.handleData(packet.Topic, packet.Payload)
			},
		},
	}

	room, err := lksdk.ConnectToRoomWithToken(url, token, callback)
	if err != nil {
		return nil, fmt.Errorf("join room: %w", err)
	}
	return sdkRoom{room: room}, nil
}
