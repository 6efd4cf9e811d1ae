package redis

import "fmt"

// Key prefix for all battleship data
const keyPrefix = "bship"

// Key generation functions for each entity type

// seqKey returns the Redis key for a monotonic ID counter
func seqKey(entity string) string {
	return fmt.Sprintf("%s:seq:%s", keyPrefix, entity)
}

// userKey returns the Redis key for a User
func userKey(id int) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, id)
}

// nameIndexKey returns the Redis key for the name -> user_id index
func nameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:name:%s", keyPrefix, name)
}

// roomKey returns the Redis key for a Room
func roomKey(id int) string {
	return fmt.Sprintf("%s:room:%d", keyPrefix, id)
}

// roomIndexKey returns the Redis key for the SET of live room IDs
func roomIndexKey() string {
	return fmt.Sprintf("%s:idx:rooms", keyPrefix)
}

// gameKey returns the Redis key for a Game
func gameKey(id int) string {
	return fmt.Sprintf("%s:game:%d", keyPrefix, id)
}

// gameIndexKey returns the Redis key for the SET of live game IDs
func gameIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// winnersKey returns the Redis key for the winners hash (name -> wins)
func winnersKey() string {
	return fmt.Sprintf("%s:winners", keyPrefix)
}
