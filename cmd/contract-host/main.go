// contract-host 在本地合约数据库上部署合约、执行交易并编码调用载荷
package main

func main() {
	Execute()
}
