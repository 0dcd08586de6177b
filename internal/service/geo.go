package service

import "math"

// EarthRadiusKm 球面地球模型半径
const EarthRadiusKm = 6371.0

// HaversineKm 两坐标（度）间的大圆距离，单位 km。
// 纯函数；不校验输入，NaN 原样传播。
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
    dLat := (lat2 - lat1) * math.Pi / 180
    dLng := (lng2 - lng1) * math.Pi / 180
    lat1Rad := lat1 * math.Pi / 180
    lat2Rad := lat2 * math.Pi / 180

    a := math.Sin(dLat/2)*math.Sin(dLat/2) +
        math.Cos(lat1Rad)*math.Cos(lat2Rad)*
            math.Sin(dLng/2)*math.Sin(dLng/2)
    return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}
