// Package cosrec 是一个美妆领域的混合推荐引擎（Cosmetics Recommender）。
//
// 设计要点：
// - Snapshot-first: 用户画像、产品特征、相似度矩阵与相似图统一打包为不可变快照，原子切换
// - 多策略召回: 协同过滤 / 内容匹配 / 图谱随机游走，经 Fusion 加权融合
// - Pipeline 组装: 召回、过滤、融合均为 Node，可通过配置文件声明式编排
package cosrec

import "github.com/rushteam/cosrec/pipeline"

// 轻量 facade：便于用户直接 import "cosrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindFusion      = pipeline.KindFusion
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
