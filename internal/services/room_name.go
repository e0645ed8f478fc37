package services

import (
	"crypto/rand"
	"math/big"
	"strings"
)

var (
	roomAdjectives = []string{"Bright", "Calm", "Eager", "Gentle", "Lively", "Quiet", "Swift", "Brave", "Clever", "Merry"}
	roomNouns      = []string{"Otters", "Falcons", "Maples", "Rivers", "Comets", "Lanterns", "Harbors", "Meadows", "Pioneers", "Echoes"}
	roomVerbs      = []string{"Gather", "Wander", "Sketch", "Plan", "Sing", "Build", "Explore", "Chat", "Reflect", "Meet"}
	roomAdverbs    = []string{"Often", "Together", "Quickly", "Softly", "Boldly", "Daily", "Freely", "Warmly", "Openly", "Gladly"}
)

// GenerateRoomName returns a random, readable room suggestion such as
// "BrightOttersGatherOften". Generated names never contain forbidden characters.
func GenerateRoomName() (string, error) {
	var b strings.Builder
	for _, words := range [][]string{roomAdjectives, roomNouns, roomVerbs, roomAdverbs} {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
		if err != nil {
			return "", err
		}
		b.WriteString(words[n.Int64()])
	}
	return b.String(), nil
}
