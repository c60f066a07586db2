package mux

import (
	"net/http/httptest"
	"testing"

	"garitoblackjack-server/pkg/blackjack"

	"github.com/stretchr/testify/assert"
)

func Test_postGame(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(NewMux("", nil))
	defer ts.Close()

	var errObj errorResponse
	assertPost(t, ts, "/game", "{}", &errObj, 400)
	assert.Equal(t, "playerName must be 1-40 characters", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, "/game", postGamePayload{
		PlayerName: "Tex",
		Difficulty: "impossible",
	}, &errObj, 400)
	assert.Equal(t, "unknown cheat or item", errObj.Message)

	var resp postGameResponse
	assertPost(t, ts, "/game", postGamePayload{PlayerName: "Tex"}, &resp, 201)
	assert.NotEmpty(t, resp.JWT)
	assert.NotEmpty(t, resp.State.ID)
	assert.Equal(t, "Tex", resp.State.PlayerName)
	assert.Equal(t, blackjack.StatusWaitingForBet, resp.State.Status)
	assert.Equal(t, 500, resp.State.Chips)
	assert.Equal(t, 0, resp.State.Stress)
	assert.Equal(t, 1, resp.State.Venue.Level)

	assertPost(t, ts, "/game", postGamePayload{
		PlayerName: "Tex",
		Difficulty: "hard",
	}, &resp, 201)
	assert.Equal(t, 400, resp.State.Chips)
	assert.Equal(t, 10, resp.State.Stress)
}

func Test_gameBetFlow(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(NewMux("", nil))
	defer ts.Close()

	gameID, token := createTestGame(t, ts)

	// no action before a bet is placed
	var errObj errorResponse
	assertPost(t, ts, "/game/"+gameID+"/action", postActionPayload{Action: "hit"}, &errObj, 409, token)

	// bet below the venue minimum
	errObj = errorResponse{}
	assertPost(t, ts, "/game/"+gameID+"/bet", postBetPayload{Amount: 1}, &errObj, 400, token)

	var resp gameResponse
	assertPost(t, ts, "/game/"+gameID+"/bet", postBetPayload{Amount: 25}, &resp, 200, token)

	// a natural on either side can resolve the round immediately
	if !assert.Contains(t, []blackjack.Status{
		blackjack.StatusPlayerTurn,
		blackjack.StatusRoundComplete,
	}, resp.State.Status) {
		return
	}

	assert.Len(t, resp.State.Hands, 1)
	assert.Len(t, resp.State.Hands[0].Cards, 2)
	assert.NotNil(t, resp.State.DealerHand)

	if resp.State.Status == blackjack.StatusPlayerTurn {
		assert.Equal(t, 25, resp.State.CurrentBet)
		assert.Equal(t, 475, resp.State.Chips)
		assert.True(t, resp.State.DealerHand.HoleHidden)

		// a double bet is rejected
		assertPost(t, ts, "/game/"+gameID+"/bet", postBetPayload{Amount: 25}, &errObj, 409, token)

		assertPost(t, ts, "/game/"+gameID+"/action", postActionPayload{Action: "stand"}, &resp, 200, token)
		assert.Equal(t, blackjack.StatusRoundComplete, resp.State.Status)
	}

	assert.Equal(t, 1, resp.State.Stats.Rounds)
	assert.NotEmpty(t, resp.State.RoundResult)

	// next round returns to the betting state
	assertPost(t, ts, "/game/"+gameID+"/round", nil, &resp, 200, token)
	assert.Equal(t, blackjack.StatusWaitingForBet, resp.State.Status)
}

func Test_gameCheatAndItemValidation(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(NewMux("", nil))
	defer ts.Close()

	gameID, token := createTestGame(t, ts)

	// cheats are only legal during the player's turn
	var errObj errorResponse
	assertPost(t, ts, "/game/"+gameID+"/cheat", postCheatPayload{Cheat: "peek_card"}, &errObj, 409, token)

	errObj = errorResponse{}
	assertPost(t, ts, "/game/"+gameID+"/item/use", postItemPayload{Item: "bottom_dealing"}, &errObj, 404, token)
	assert.Equal(t, "unknown cheat or item", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, "/game/"+gameID+"/item/use", postItemPayload{Item: "gafas_oscuras"}, &errObj, 400, token)

	errObj = errorResponse{}
	assertPost(t, ts, "/game/"+gameID+"/item/use", postItemPayload{Item: "whiskey"}, &errObj, 400, token)
	assert.Equal(t, "item is not owned", errObj.Message)

	// the shop is closed outside a venue transition
	errObj = errorResponse{}
	assertPost(t, ts, "/game/"+gameID+"/item/buy", postItemPayload{Item: "whiskey"}, &errObj, 409, token)

	errObj = errorResponse{}
	assertPost(t, ts, "/game/"+gameID+"/venue/advance", nil, &errObj, 400, token)
}

func Test_deleteGameUUID(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(NewMux("", nil))
	defer ts.Close()

	gameID, token := createTestGame(t, ts)

	var resp gameResponse
	assertDelete(t, ts, "/game/"+gameID, &resp, 200, token)
	assert.Equal(t, gameID, resp.State.ID)

	// without a store the retired game is gone
	var errObj errorResponse
	assertGet(t, ts, "/game/"+gameID, &errObj, 404, token)
}
