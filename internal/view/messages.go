package view

import (
	"errors"
	"fmt"

	"coffeebeans/client/internal/client"
)

const (
	msgCountriesFailed    = "国家列表加载失败"
	msgFlavorsFailed      = "风味分类加载失败"
	msgRecordsFailed      = "数据加载失败"
	msgBeanMissing        = "未提供咖啡豆数据"
	msgBeanUnparsable     = "无法解析咖啡豆数据"
	msgTrendsFailed       = "获取价格趋势失败"
	msgTrendsNetworkError = "网络错误，无法获取价格趋势"
)

func trendsErrorMessage(err error) string {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("%s: %d", msgTrendsFailed, httpErr.StatusCode)
	}
	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		return msgTrendsNetworkError
	}
	return msgTrendsFailed
}
