package dto

import (
	"encoding/json"
	"testing"
)

func TestRedeemRequestRewardID(t *testing.T) {
	tests := []struct {
		body    string
		want    RewardID
		wantErr bool
	}{
		{body: `{"rewardId": 2}`, want: "2"},
		{body: `{"rewardId": "2"}`, want: "2"},
		{body: `{"rewardId": "tree-donation"}`, want: "tree-donation"},
		{body: `{"rewardId": true}`, wantErr: true},
	}

	for _, tt := range tests {
		var req RedeemRequest
		err := json.Unmarshal([]byte(tt.body), &req)
		if (err != nil) != tt.wantErr {
			t.Errorf("Unmarshal(%s) error = %v", tt.body, err)
			continue
		}
		if req.RewardID != tt.want {
			t.Errorf("Unmarshal(%s) rewardId = %q, want %q", tt.body, req.RewardID, tt.want)
		}
	}
}
