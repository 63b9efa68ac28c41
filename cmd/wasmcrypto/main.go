// wasmcrypto 命令行：验签、哈希、助记词与执行桥状态
package main

func main() {
	Execute()
}
