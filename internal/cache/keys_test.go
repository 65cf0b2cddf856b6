package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "progress",
			objectType:  "snapshot",
			identifier:  "01HZX3",
			paramsKey:   nil,
			expectedKey: "quizlearn:progress:snapshot:01HZX3",
		},
		{
			name:        "with one paramsKey",
			serviceName: "leaderboard",
			objectType:  "page",
			identifier:  "global",
			paramsKey:   []string{"10"},
			expectedKey: "quizlearn:leaderboard:page:global:10",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "research",
			objectType:  "result",
			identifier:  "q1",
			paramsKey:   []string{"p1", "p2"},
			expectedKey: "quizlearn:research:result:q1:p1_p2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestChannelKeys(t *testing.T) {
	if got := ChangeChannel("user1"); got != "quizlearn:changes:user1" {
		t.Errorf("ChangeChannel() = %v", got)
	}
	if got := LeaderboardChannel(); got != "quizlearn:changes:leaderboard" {
		t.Errorf("LeaderboardChannel() = %v", got)
	}
	if got := LeaderboardKey(); got != "quizlearn:leaderboard:xp" {
		t.Errorf("LeaderboardKey() = %v", got)
	}
}
