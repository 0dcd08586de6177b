package service

// CanJoin 容量判定：当前人数未达上限才允许加入
func CanJoin(currentCount int64, maxPlayers int) bool {
    return currentCount < int64(maxPlayers)
}
