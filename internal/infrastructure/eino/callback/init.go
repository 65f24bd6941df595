package callback

import (
	"sync"

	einocallbacks "github.com/cloudwego/eino/callbacks"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"
)

var initOnce sync.Once

// Init 注册模型调用的全局观测 handler，进程内只生效一次。
// 需要在构建任何工作流链之前调用。
func Init() {
	initOnce.Do(func() {
		einocallbacks.AppendGlobalHandlers(
			cbtemplate.NewHandlerHelper().
				ChatModel(newChatModelCallbackHandler()).
				Handler(),
		)
	})
}
