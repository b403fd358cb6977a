package ws

import (
	"errors"

	"github.com/go-viper/mapstructure/v2"
)

// BindJSON 把 Body.Msg（JSON 解出来的 map）按 json tag 解到 dst，数字和字符串之间允许弱转换。
func BindJSON(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil {
		return errors.New("ws request body is nil")
	}
	if req.Body.Msg == nil {
		return errors.New("ws request msg is empty")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(req.Body.Msg)
}
