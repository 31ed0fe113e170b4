package host

import (
	"context"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/types"
)

// ProofVerifier zk 证明验证器
//
// 宿主只负责把元数据中的公开输入和交易携带的证明配对，
// 证明系统本身由注入的实现决定。
type ProofVerifier interface {
	Verify(ctx context.Context, circuit string, publicInputs []fr.Element, proof []byte) error
}

// RejectProofs 未配置证明系统时使用：任何 zk 要求都会被拒绝
type RejectProofs struct{}

// Verify 总是失败
func (RejectProofs) Verify(_ context.Context, circuit string, _ []fr.Element, _ []byte) error {
	return abi.NewError(abi.Internal, "未配置证明验证器，无法验证电路 %s", circuit)
}

// Verifier 元数据验证
type Verifier struct {
	proofs ProofVerifier
}

// NewVerifier 创建验证器；proofs 为 nil 时使用 RejectProofs
func NewVerifier(proofs ProofVerifier) *Verifier {
	if proofs == nil {
		proofs = RejectProofs{}
	}
	return &Verifier{proofs: proofs}
}

// VerifySignatures 按顺序校验签名，数量必须与公钥一致
func (v *Verifier) VerifySignatures(sighash []byte, pubkeys []*secp256k1.PublicKey, sigs []*schnorr.Signature) error {
	if len(pubkeys) != len(sigs) {
		return abi.NewError(abi.Internal, "签名数量不匹配: have %d want %d", len(sigs), len(pubkeys))
	}
	for i, pk := range pubkeys {
		if pk == nil || sigs[i] == nil {
			return abi.NewError(abi.Internal, "第 %d 个签名或公钥为空", i)
		}
		if !sigs[i].Verify(sighash, pk) {
			return abi.NewError(abi.Internal, "第 %d 个签名验证失败", i)
		}
	}
	return nil
}

// VerifyProofs 将公开输入组与证明按顺序配对验证
func (v *Verifier) VerifyProofs(ctx context.Context, inputs []types.ZkPublicInput, proofs []Proof) error {
	if len(inputs) != len(proofs) {
		return abi.NewError(abi.Internal, "证明数量不匹配: have %d want %d", len(proofs), len(inputs))
	}
	for i, zk := range inputs {
		if proofs[i].Circuit != zk.Circuit {
			return abi.NewError(abi.Internal, "第 %d 个证明电路不匹配: %s != %s", i, proofs[i].Circuit, zk.Circuit)
		}
		if err := v.proofs.Verify(ctx, zk.Circuit, zk.Inputs, proofs[i].Data); err != nil {
			return abi.WrapError(abi.Internal, err, "zk 证明验证失败")
		}
	}
	return nil
}
